package keeper_test

import (
	"github.com/cosmos/cosmos-sdk/types/query"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	keepertest "github.com/mars-protocol/mars-common/testutil/keeper"
	dextypes "github.com/mars-protocol/mars-common/x/dex/types"
	"github.com/mars-protocol/mars-common/x/oracle/keeper"
	"github.com/mars-protocol/mars-common/x/oracle/types"
)

func (suite *KeeperTestSuite) TestSetPriceSourceUnauthorized() {
	stranger := keepertest.TestAddr("stranger").String()

	_, err := suite.keeper.SetPriceSource(suite.ctx, stranger, "uusd", fixed("1"))
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
	suite.Require().Contains(err.Error(), stranger+" is not authorized to set price source")
	suite.Require().False(suite.keeper.HasPriceSource(suite.ctx, "uusd"))

	suite.setFixed("uusd", "1")
	err = suite.keeper.RemovePriceSource(suite.ctx, stranger, "uusd")
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
	suite.Require().True(suite.keeper.HasPriceSource(suite.ctx, "uusd"))
}

func (suite *KeeperTestSuite) TestSetPriceSourceWithoutOwner() {
	params := suite.keeper.GetParams(suite.ctx)
	params.Owner = ""
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, params))

	_, err := suite.keeper.SetPriceSource(suite.ctx, suite.owner, "uusd", fixed("1"))
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (suite *KeeperTestSuite) TestCheckPriceSource() {
	atomUsd := suite.createPool("uatom", "uusd", 1_000, 1_000)
	osmoAtom := suite.createPool("uosmo", "uatom", 1_000, 1_000)
	suite.setFixed("uusd", "1")
	suite.setFixed("uatom", "2")

	tests := []struct {
		name      string
		denom     string
		source    types.PriceSourceUnchecked
		errSubstr string
	}{
		{"fixed", "uinj", fixed("1.25"), ""},
		{"spot paired with base", "uatom", spot(atomUsd), ""},
		{"spot with route", "uosmo", spot(osmoAtom, "uatom", "uusd"), ""},
		{"twap with route", "uosmo", twap(osmoAtom, 600, 60, "uatom", "uusd"), ""},
		{"negative price", "uinj", fixed("-1"), "cannot be negative"},
		{"unparsable price", "uinj", fixed("one"), "invalid fixed price"},
		{"no variant", "uinj", types.PriceSourceUnchecked{}, "exactly one price source variant"},
		{"two variants", "uinj", types.PriceSourceUnchecked{Fixed: &types.FixedUnchecked{Price: "1"}, Spot: &types.SpotUnchecked{Pool: "1"}}, "exactly one price source variant"},
		{"pool zero", "uatom", spot(0), "pool id cannot be zero"},
		{"unknown pool", "uatom", spot(99), "query pool 99"},
		{"denom not in pool", "uinj", spot(atomUsd), "does not contain uinj"},
		{"route required", "uosmo", spot(osmoAtom), "route assets are required"},
		{"first route asset not paired", "uosmo", spot(osmoAtom, "uusd"), "first route asset uusd"},
		{"last route asset not base", "uosmo", spot(osmoAtom, "uatom"), "last route asset uatom"},
		{"unregistered route asset", "uosmo", spot(osmoAtom, "uatom", "ujuno", "uusd"), "no price source for route asset ujuno"},
		{"duplicate route asset", "uosmo", spot(osmoAtom, "uatom", "uatom", "uusd"), "listed twice"},
		{"zero window", "uatom", twap(atomUsd, 0, 0), "window size must be positive"},
		{"tolerance too wide", "uatom", twap(atomUsd, 60, 60), "must be smaller than window size"},
		{"invalid denom", "1x", fixed("1"), "1x"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			ps, err := suite.keeper.CheckPriceSource(suite.ctx, tc.denom, tc.source)
			if tc.errSubstr == "" {
				suite.Require().NoError(err)
				suite.Require().NotNil(ps)
				return
			}
			suite.Require().Error(err)
			suite.Require().Contains(err.Error(), tc.errSubstr)
		})
	}
}

func (suite *KeeperTestSuite) TestSetPriceSourceRejectsCycle() {
	pool := suite.createPool("uatom", "uosmo", 1_000, 1_000)
	suite.setFixed("uusd", "1")
	suite.setFixed("uosmo", "1")
	suite.setSpot("uatom", pool, "uosmo", "uusd")

	// uosmo routing through uatom would close the loop uosmo -> uatom -> uosmo
	_, err := suite.keeper.SetPriceSource(suite.ctx, suite.owner, "uosmo", spot(pool, "uatom", "uusd"))
	suite.Require().ErrorIs(err, types.ErrInvalidPriceSource)
	suite.Require().Contains(err.Error(), "route assets contain a loop: denom uosmo seen twice")

	ps, err := suite.keeper.GetPriceSource(suite.ctx, "uosmo")
	suite.Require().NoError(err)
	suite.Require().Equal("fixed:1", ps.String())
}

func (suite *KeeperTestSuite) TestMsgServer() {
	ms := keeper.NewMsgServerImpl(suite.keeper)

	_, err := ms.SetPriceSource(suite.ctx, &types.MsgSetPriceSource{Sender: suite.owner, Denom: "uusd", PriceSource: fixed("0.5")})
	suite.Require().NoError(err)

	_, err = ms.SetPriceSource(suite.ctx, &types.MsgSetPriceSource{Sender: "not-an-address", Denom: "uusd", PriceSource: fixed("1")})
	suite.Require().Error(err)

	_, err = ms.RemovePriceSource(suite.ctx, &types.MsgRemovePriceSource{Sender: suite.owner, Denom: "uatom"})
	suite.Require().ErrorIs(err, types.ErrPriceSourceNotFound)

	_, err = ms.RemovePriceSource(suite.ctx, &types.MsgRemovePriceSource{Sender: suite.owner, Denom: "uusd"})
	suite.Require().NoError(err)
	suite.Require().False(suite.keeper.HasPriceSource(suite.ctx, "uusd"))

	newOwner := keepertest.TestAddr("new-owner").String()
	params := suite.keeper.GetParams(suite.ctx)
	params.Owner = newOwner

	_, err = ms.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: suite.owner, Params: params})
	suite.Require().ErrorIs(err, govtypes.ErrInvalidSigner)

	_, err = ms.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: suite.app.Authority(), Params: params})
	suite.Require().NoError(err)
	suite.Require().Equal(newOwner, suite.keeper.GetParams(suite.ctx).Owner)

	_, err = ms.SetPriceSource(suite.ctx, &types.MsgSetPriceSource{Sender: suite.owner, Denom: "uusd", PriceSource: fixed("1")})
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (suite *KeeperTestSuite) TestQueryServer() {
	qs := keeper.NewQueryServerImpl(suite.keeper)
	pool := suite.createPool("uatom", "uusd", 1_000_000_000, 1_000_000_000)
	suite.setFixed("uusd", "0.5")
	suite.setFixed("uinj", "25")
	suite.setSpot("uatom", pool)

	resp, err := qs.PriceSource(suite.ctx, &types.QueryPriceSourceRequest{Denom: "uatom"})
	suite.Require().NoError(err)
	suite.Require().Equal("spot:1. Route: ", resp.PriceSource.Display)
	suite.Require().Equal("1", resp.PriceSource.PriceSource.Spot.Pool)

	list, err := qs.PriceSources(suite.ctx, &types.QueryPriceSourcesRequest{Pagination: &query.PageRequest{Limit: 2}})
	suite.Require().NoError(err)
	suite.Require().Len(list.PriceSources, 2)
	suite.Require().Equal("uatom", list.PriceSources[0].Denom)
	suite.Require().Equal("uinj", list.PriceSources[1].Denom)
	suite.Require().NotEmpty(list.Pagination.NextKey)

	price, err := qs.Price(suite.ctx, &types.QueryPriceRequest{Denom: "uusd"})
	suite.Require().NoError(err)
	suite.Require().Equal("0.500000000000000000", price.Price.Price.String())

	// uatom has no denom metadata so the page fails as a whole
	_, err = qs.Prices(suite.ctx, &types.QueryPricesRequest{})
	suite.Require().ErrorIs(err, types.ErrPriceUnavailable)

	// one base unit buys nothing, which is not a price
	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uatom", 0)
	_, err = qs.Prices(suite.ctx, &types.QueryPricesRequest{})
	suite.Require().ErrorIs(err, dextypes.ErrInsufficientLiquidity)

	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uatom", 6)
	prices, err := qs.Prices(suite.ctx, &types.QueryPricesRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(prices.Prices, 3)
	suite.Require().Equal("uusd", prices.Prices[2].Denom)

	_, err = qs.Price(suite.ctx, &types.QueryPriceRequest{})
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))

	_, err = qs.PriceSource(suite.ctx, nil)
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))
}
