package keeper_test

import (
	"github.com/cosmos/cosmos-sdk/types/query"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	keepertest "github.com/mars-protocol/mars-common/testutil/keeper"
	"github.com/mars-protocol/mars-common/x/swapper/keeper"
	"github.com/mars-protocol/mars-common/x/swapper/types"
)

func (suite *KeeperTestSuite) TestSetRoute() {
	route := suite.atomToUsd()

	suite.Require().NoError(suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uusd", route))
	// setting the same route again is a no-op
	suite.Require().NoError(suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uusd", route))

	stored, err := suite.keeper.GetRoute(suite.ctx, "uatom", "uusd")
	suite.Require().NoError(err)
	suite.Require().Equal(route, stored)
	suite.Require().Equal("uatom:uosmo|2:uusd", stored.String())

	_, err = suite.keeper.GetRoute(suite.ctx, "uusd", "uatom")
	suite.Require().ErrorIs(err, types.ErrRouteNotFound)
	suite.Require().Contains(err.Error(), "no route from uusd to uatom")

	// replacing with a direct route
	direct := types.NewRoute(types.PoolRouteStep{PoolID: suite.atomOsmo, TokenOutDenom: "uosmo"})
	suite.Require().NoError(suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uosmo", direct))
	stored, err = suite.keeper.GetRoute(suite.ctx, "uatom", "uosmo")
	suite.Require().NoError(err)
	suite.Require().Equal(direct, stored)

	var count int
	suite.Require().NoError(suite.keeper.IterateRoutes(suite.ctx, func(types.RouteEntry) bool {
		count++
		return false
	}))
	suite.Require().Equal(2, count)
}

func (suite *KeeperTestSuite) TestSetRouteRejected() {
	stranger := keepertest.TestAddr("stranger").String()

	err := suite.keeper.SetRoute(suite.ctx, stranger, "uatom", "uusd", suite.atomToUsd())
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
	suite.Require().Contains(err.Error(), stranger+" is not authorized to set route")

	err = suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uosmo", suite.atomToUsd())
	suite.Require().ErrorIs(err, types.ErrInvalidRoute)
	suite.Require().Contains(err.Error(), "does not match the desired output uosmo")

	err = suite.keeper.SetRoute(suite.ctx, suite.owner, "uusd", "uatom",
		types.NewRoute(types.PoolRouteStep{PoolID: suite.atomOsmo, TokenOutDenom: "uatom"}))
	suite.Require().ErrorIs(err, types.ErrInvalidRoute)
	suite.Require().Contains(err.Error(), "does not contain input denom uusd")

	params := suite.keeper.GetParams(suite.ctx)
	params.MaxHops = 1
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, params))
	err = suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uusd", suite.atomToUsd())
	suite.Require().ErrorIs(err, types.ErrInvalidRoute)
	suite.Require().Contains(err.Error(), "route has 2 steps, max 1")

	_, err = suite.keeper.GetRoute(suite.ctx, "uatom", "uusd")
	suite.Require().ErrorIs(err, types.ErrRouteNotFound)
}

func (suite *KeeperTestSuite) TestMsgServerSetRouteAndParams() {
	ms := keeper.NewMsgServerImpl(suite.keeper)

	_, err := ms.SetRoute(suite.ctx, &types.MsgSetRoute{Sender: suite.owner, DenomIn: "uatom", DenomOut: "uusd", Route: suite.atomToUsd()})
	suite.Require().NoError(err)

	_, err = ms.SetRoute(suite.ctx, &types.MsgSetRoute{Sender: "bad", DenomIn: "uatom", DenomOut: "uusd", Route: suite.atomToUsd()})
	suite.Require().Error(err)

	params := types.DefaultParams()
	_, err = ms.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: suite.owner, Params: params})
	suite.Require().ErrorIs(err, govtypes.ErrInvalidSigner)

	_, err = ms.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: suite.app.Authority(), Params: params})
	suite.Require().NoError(err)

	// without an owner nobody can set routes
	_, err = ms.SetRoute(suite.ctx, &types.MsgSetRoute{Sender: suite.owner, DenomIn: "uatom", DenomOut: "uusd", Route: suite.atomToUsd()})
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (suite *KeeperTestSuite) TestQueryServer() {
	qs := keeper.NewQueryServerImpl(suite.keeper)
	suite.Require().NoError(suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uusd", suite.atomToUsd()))
	suite.Require().NoError(suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uosmo",
		types.NewRoute(types.PoolRouteStep{PoolID: suite.atomOsmo, TokenOutDenom: "uosmo"})))
	suite.Require().NoError(suite.keeper.SetRoute(suite.ctx, suite.owner, "uusd", "uosmo",
		types.NewRoute(types.PoolRouteStep{PoolID: suite.osmoUsd, TokenOutDenom: "uosmo"})))

	resp, err := qs.Route(suite.ctx, &types.QueryRouteRequest{DenomIn: "uatom", DenomOut: "uusd"})
	suite.Require().NoError(err)
	suite.Require().Equal("uatom:uosmo|2:uusd", resp.Route.Display)

	page, err := qs.Routes(suite.ctx, &types.QueryRoutesRequest{Pagination: &query.PageRequest{Limit: 2}})
	suite.Require().NoError(err)
	suite.Require().Len(page.Routes, 2)
	suite.Require().NotEmpty(page.Pagination.NextKey)
	// the shorter denom in sorts first
	suite.Require().Equal("uusd", page.Routes[0].DenomIn)
	suite.Require().Equal("uosmo", page.Routes[1].DenomOut)

	rest, err := qs.Routes(suite.ctx, &types.QueryRoutesRequest{Pagination: &query.PageRequest{Key: page.Pagination.NextKey}})
	suite.Require().NoError(err)
	suite.Require().Len(rest.Routes, 1)
	suite.Require().Equal("uatom", rest.Routes[0].DenomIn)
	suite.Require().Equal("uusd", rest.Routes[0].DenomOut)

	_, err = qs.Route(suite.ctx, &types.QueryRouteRequest{DenomIn: "uatom"})
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))

	_, err = qs.Routes(suite.ctx, nil)
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))

	params, err := qs.Params(suite.ctx, &types.QueryParamsRequest{})
	suite.Require().NoError(err)
	suite.Require().Equal(suite.owner, params.Params.Owner)
}

func (suite *KeeperTestSuite) TestGenesisExportImport() {
	suite.Require().NoError(suite.keeper.SetRoute(suite.ctx, suite.owner, "uatom", "uusd", suite.atomToUsd()))

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(exported.Validate())
	suite.Require().Len(exported.Routes, 1)

	// routes are checked against pools, so an app without them rejects the import
	empty, emptyCtx := keepertest.SetupTestApp(suite.T())
	suite.Require().ErrorIs(empty.SwapperKeeper.InitGenesis(emptyCtx, *exported), types.ErrInvalidRoute)

	dexGenesis, err := suite.app.DexKeeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	other, otherCtx := keepertest.SetupTestApp(suite.T())
	suite.Require().NoError(other.DexKeeper.InitGenesis(otherCtx, *dexGenesis))
	suite.Require().NoError(other.SwapperKeeper.InitGenesis(otherCtx, *exported))

	reexported, err := other.SwapperKeeper.ExportGenesis(otherCtx)
	suite.Require().NoError(err)
	suite.Require().Equal(exported, reexported)
}
