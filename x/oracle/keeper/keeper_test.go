package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	"github.com/mars-protocol/mars-common/app"
	keepertest "github.com/mars-protocol/mars-common/testutil/keeper"
	"github.com/mars-protocol/mars-common/x/oracle/keeper"
	"github.com/mars-protocol/mars-common/x/oracle/types"
)

type KeeperTestSuite struct {
	suite.Suite

	app    *app.MarsApp
	ctx    sdk.Context
	keeper keeper.Keeper
	owner  string
}

func (suite *KeeperTestSuite) SetupTest() {
	suite.app, suite.ctx = keepertest.SetupTestApp(suite.T())
	suite.keeper = suite.app.OracleKeeper
	suite.owner = keepertest.TestAddr("oracle-owner").String()

	params := suite.keeper.GetParams(suite.ctx)
	params.Owner = suite.owner
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, params))
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (suite *KeeperTestSuite) setFixed(denom, price string) {
	_, err := suite.keeper.SetPriceSource(suite.ctx, suite.owner, denom, fixed(price))
	suite.Require().NoError(err)
}

func (suite *KeeperTestSuite) setSpot(denom string, poolID uint64, routeAssets ...string) {
	_, err := suite.keeper.SetPriceSource(suite.ctx, suite.owner, denom, spot(poolID, routeAssets...))
	suite.Require().NoError(err)
}

func (suite *KeeperTestSuite) createPool(denomA, denomB string, amountA, amountB int64) uint64 {
	return keepertest.CreateTestPool(suite.T(), suite.app, suite.ctx, denomA, denomB, math.NewInt(amountA), math.NewInt(amountB))
}

func fixed(price string) types.PriceSourceUnchecked {
	return types.PriceSourceUnchecked{Fixed: &types.FixedUnchecked{Price: price}}
}

func spot(poolID uint64, routeAssets ...string) types.PriceSourceUnchecked {
	return types.PriceSourceUnchecked{Spot: &types.SpotUnchecked{Pool: uintString(poolID), RouteAssets: routeAssets}}
}

func twap(poolID, window, tolerance uint64, routeAssets ...string) types.PriceSourceUnchecked {
	return types.PriceSourceUnchecked{Twap: &types.TwapUnchecked{
		Pool:        uintString(poolID),
		WindowSize:  window,
		Tolerance:   tolerance,
		RouteAssets: routeAssets,
	}}
}

func uintString(v uint64) string {
	return math.NewIntFromUint64(v).String()
}
