package keeper_test

import (
	keepertest "github.com/mars-protocol/mars-common/testutil/keeper"
	"github.com/mars-protocol/mars-common/x/oracle/types"
)

func (suite *KeeperTestSuite) TestGenesisExportImport() {
	pool := suite.createPool("uatom", "uosmo", 1_000_000, 2_000_000)
	suite.setFixed("uusd", "1")
	suite.setFixed("uosmo", "0.25")
	suite.setSpot("uatom", pool, "uosmo", "uusd")

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(exported.Validate())
	suite.Require().Len(exported.PriceSources, 3)
	suite.Require().Equal(suite.owner, exported.Params.Owner)

	// pools must exist before pool backed sources are imported
	dexGenesis, err := suite.app.DexKeeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)

	other, otherCtx := keepertest.SetupTestApp(suite.T())
	suite.Require().NoError(other.DexKeeper.InitGenesis(otherCtx, *dexGenesis))
	suite.Require().NoError(other.OracleKeeper.InitGenesis(otherCtx, *exported))

	reexported, err := other.OracleKeeper.ExportGenesis(otherCtx)
	suite.Require().NoError(err)
	suite.Require().Equal(exported, reexported)

	ps, err := other.OracleKeeper.GetPriceSource(otherCtx, "uatom")
	suite.Require().NoError(err)
	suite.Require().Equal("spot:1. Route: uosmo,uusd", ps.String())
}

func (suite *KeeperTestSuite) TestInitGenesisRejectsMissingPool() {
	other, otherCtx := keepertest.SetupTestApp(suite.T())

	gs := types.DefaultGenesis()
	gs.PriceSources = []types.DenomPriceSource{
		{Denom: "uatom", PriceSource: spot(7)},
	}
	suite.Require().NoError(gs.Validate())

	err := other.OracleKeeper.InitGenesis(otherCtx, *gs)
	suite.Require().ErrorIs(err, types.ErrInvalidPriceSource)
	suite.Require().False(other.OracleKeeper.HasPriceSource(otherCtx, "uatom"))
}
