package keeper_test

import (
	"strings"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/mars-protocol/mars-common/testutil/keeper"
	dexkeeper "github.com/mars-protocol/mars-common/x/dex/keeper"
	"github.com/mars-protocol/mars-common/x/oracle/types"
)

func (suite *KeeperTestSuite) TestFixedPrice() {
	suite.setFixed("uusd", "0.5")

	price, err := suite.keeper.QueryPrice(suite.ctx, "uusd")
	suite.Require().NoError(err)
	suite.Require().Equal(math.LegacyNewDecWithPrec(5, 1), price)

	// the stored price is returned whatever the base denom is
	for _, base := range []string{"uusd", "uosmo"} {
		params := suite.keeper.GetParams(suite.ctx)
		params.BaseDenom = base
		suite.Require().NoError(suite.keeper.SetParams(suite.ctx, params))

		price, err = suite.keeper.QueryPrice(suite.ctx, "uusd")
		suite.Require().NoError(err)
		suite.Require().Equal(math.LegacyNewDecWithPrec(5, 1), price, base)
	}

	_, err = suite.keeper.QueryPrice(suite.ctx, "uatom")
	suite.Require().ErrorIs(err, types.ErrPriceSourceNotFound)
}

func (suite *KeeperTestSuite) TestSpotPriceWithoutRoute() {
	poolID := suite.createPool("uatom", "uusd", 1_000_000_000_000, 2_000_000_000_000)
	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uatom", 6)
	suite.setSpot("uatom", poolID)

	one := math.NewInt(1_000_000)
	ret, err := dexkeeper.CalculateSwapOutput(one, math.NewInt(1_000_000_000_000), math.NewInt(2_000_000_000_000), suite.app.DexKeeper.GetParams(suite.ctx).SwapFee)
	suite.Require().NoError(err)

	price, err := suite.keeper.QueryPrice(suite.ctx, "uatom")
	suite.Require().NoError(err)
	suite.Require().Equal(math.LegacyNewDecFromInt(ret).QuoInt(one), price)
	suite.Require().True(price.LT(math.LegacyNewDec(2)))
	suite.Require().True(price.GT(math.LegacyNewDecWithPrec(199, 2)))
}

func (suite *KeeperTestSuite) TestSpotPriceNeedsMetadata() {
	poolID := suite.createPool("uatom", "uusd", 1_000_000, 2_000_000)
	suite.setSpot("uatom", poolID)

	_, err := suite.keeper.QueryPrice(suite.ctx, "uatom")
	suite.Require().ErrorIs(err, types.ErrPriceUnavailable)
}

func (suite *KeeperTestSuite) TestSpotPriceThroughRouteAssets() {
	osmoAtom := suite.createPool("uosmo", "uatom", 1_000_000_000_000, 100_000_000_000)
	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uosmo", 6)

	suite.setFixed("uusd", "1")
	suite.setFixed("uatom", "10.5")
	suite.setSpot("uosmo", osmoAtom, "uatom", "uusd")

	one := math.NewInt(1_000_000)
	ret, err := suite.app.DexKeeper.SimulateSwap(suite.ctx, osmoAtom, sdk.NewCoin("uosmo", one), "uatom")
	suite.Require().NoError(err)
	want := math.LegacyNewDecFromInt(ret).QuoInt(one).Mul(math.LegacyMustNewDecFromStr("10.5")).Mul(math.LegacyOneDec())

	price, err := suite.keeper.QueryPrice(suite.ctx, "uosmo")
	suite.Require().NoError(err)
	suite.Require().Equal(want, price)

	// a route asset is resolved with its own source, not the pool price
	suite.setFixed("uusd", "2")
	doubled, err := suite.keeper.QueryPrice(suite.ctx, "uosmo")
	suite.Require().NoError(err)
	suite.Require().Equal(want.MulInt64(2), doubled)
}

func (suite *KeeperTestSuite) TestRemoveRouteAsset() {
	osmoAtom := suite.createPool("uosmo", "uatom", 1_000_000_000, 100_000_000)
	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uosmo", 6)

	suite.setFixed("uusd", "1")
	suite.setFixed("uatom", "10")
	suite.setSpot("uosmo", osmoAtom, "uatom", "uusd")

	err := suite.keeper.RemovePriceSource(suite.ctx, suite.owner, "uatom")
	suite.Require().ErrorIs(err, types.ErrInvalidPriceSource)
	suite.Require().Contains(err.Error(), "price source of uosmo routes through uatom")

	_, err = suite.keeper.QueryPrice(suite.ctx, "uosmo")
	suite.Require().NoError(err)
	genesis, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(genesis.Validate())

	// once nothing routes through it the asset can go
	suite.Require().NoError(suite.keeper.RemovePriceSource(suite.ctx, suite.owner, "uosmo"))
	suite.Require().NoError(suite.keeper.RemovePriceSource(suite.ctx, suite.owner, "uatom"))

	genesis, err = suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(genesis.Validate())
	suite.Require().Len(genesis.PriceSources, 1)
}

func (suite *KeeperTestSuite) TestRouteDepthBounded() {
	osmoAtom := suite.createPool("uosmo", "uatom", 1_000_000_000, 1_000_000_000)
	injOsmo := suite.createPool("uinj", "uosmo", 1_000_000_000, 1_000_000_000)
	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uosmo", 6)
	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uinj", 6)

	suite.setFixed("uusd", "1")
	suite.setFixed("uatom", "3")
	suite.setSpot("uosmo", osmoAtom, "uatom", "uusd")
	suite.setSpot("uinj", injOsmo, "uosmo", "uusd")

	_, err := suite.keeper.QueryPrice(suite.ctx, "uinj")
	suite.Require().NoError(err)

	params := suite.keeper.GetParams(suite.ctx)
	params.MaxRouteDepth = 1
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, params))

	_, err = suite.keeper.QueryPrice(suite.ctx, "uinj")
	suite.Require().ErrorIs(err, types.ErrInvalidPrice)
	suite.Require().Contains(err.Error(), "route asset depth exceeded")

	// one level of route assets still fits
	_, err = suite.keeper.QueryPrice(suite.ctx, "uosmo")
	suite.Require().NoError(err)
}

func (suite *KeeperTestSuite) TestRouteMultiplicationOverflow() {
	osmoAtom := suite.createPool("uosmo", "uatom", 1_000_000_000, 1_000_000_000)
	keepertest.SetDenomMetadata(suite.app, suite.ctx, "uosmo", 6)

	huge := "1" + strings.Repeat("0", 45)
	suite.setFixed("uusd", huge)
	suite.setFixed("uatom", huge)
	suite.setSpot("uosmo", osmoAtom, "uatom", "uusd")

	_, err := suite.keeper.QueryPrice(suite.ctx, "uosmo")
	suite.Require().ErrorIs(err, types.ErrArithmeticOverflow)
}

func (suite *KeeperTestSuite) TestTwapPrice() {
	poolID := suite.createPool("uatom", "uusd", 1_000_000, 2_000_000)
	suite.setFixed("uusd", "1")
	_, err := suite.keeper.SetPriceSource(suite.ctx, suite.owner, "uatom", twap(poolID, 100, 10))
	suite.Require().NoError(err)

	// no snapshot is old enough yet
	_, err = suite.keeper.QueryPrice(suite.ctx, "uatom")
	suite.Require().ErrorIs(err, types.ErrPriceUnavailable)

	for i := 0; i < 10; i++ {
		suite.ctx = keepertest.NextBlock(suite.T(), suite.app, suite.ctx, 10*time.Second)
	}

	price, err := suite.keeper.QueryPrice(suite.ctx, "uatom")
	suite.Require().NoError(err)
	suite.Require().Equal(math.LegacyNewDec(2), price)

	_, err = suite.keeper.SetPriceSource(suite.ctx, suite.owner, "uusd", twap(poolID, 100, 10))
	suite.Require().ErrorIs(err, types.ErrInvalidPriceSource, "uusd pairs with uatom, not the base denom")
}

func (suite *KeeperTestSuite) TestTwapPriceThroughRouteAssets() {
	poolID := suite.createPool("uosmo", "uatom", 4_000_000, 1_000_000)
	suite.setFixed("uusd", "1")
	suite.setFixed("uatom", "3")
	_, err := suite.keeper.SetPriceSource(suite.ctx, suite.owner, "uosmo", twap(poolID, 60, 5, "uatom", "uusd"))
	suite.Require().NoError(err)

	for i := 0; i < 6; i++ {
		suite.ctx = keepertest.NextBlock(suite.T(), suite.app, suite.ctx, 10*time.Second)
	}

	price, err := suite.keeper.QueryPrice(suite.ctx, "uosmo")
	suite.Require().NoError(err)
	suite.Require().Equal(math.LegacyNewDecWithPrec(75, 2), price)
}
