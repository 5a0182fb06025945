package app_test

import (
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/mars-protocol/mars-common/app"
	keepertest "github.com/mars-protocol/mars-common/testutil/keeper"
	dextypes "github.com/mars-protocol/mars-common/x/dex/types"
	oracletypes "github.com/mars-protocol/mars-common/x/oracle/types"
	swappertypes "github.com/mars-protocol/mars-common/x/swapper/types"
)

func TestNewMarsApp(t *testing.T) {
	marsApp, err := app.NewMarsApp(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, err)

	require.Equal(t, app.Name, marsApp.Name())
	require.Equal(t, "mars", sdk.GetConfig().GetBech32AccountAddrPrefix())
	for _, key := range []string{dextypes.StoreKey, oracletypes.StoreKey, swappertypes.StoreKey} {
		require.NotNil(t, marsApp.GetKey(key), key)
	}
	require.Equal(t, app.BaseDenom, oracletypes.DefaultParams().BaseDenom)

	blocked := app.BlockedModuleAccountAddrs()
	require.True(t, blocked[marsApp.SwapperKeeper.GetModuleAddress().String()])
}

func TestGenesisRoundTrip(t *testing.T) {
	marsApp, err := app.NewMarsApp(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, err)

	genesis := app.NewDefaultGenesisState(marsApp.AppCodec())
	require.NoError(t, app.ValidateGenesis(marsApp.AppCodec(), genesis))

	ctx := marsApp.NewContext(1, time.Unix(1_700_000_000, 0).UTC())
	require.NoError(t, marsApp.InitChainer(ctx, genesis))
	require.NoError(t, marsApp.EndBlocker(ctx))
	require.Equal(t, int64(1), marsApp.Commit())
	require.Equal(t, int64(1), marsApp.LastBlockHeight())

	exported, err := marsApp.ExportGenesis(marsApp.NewContext(2, time.Unix(1_700_000_006, 0).UTC()))
	require.NoError(t, err)
	for _, name := range []string{dextypes.ModuleName, oracletypes.ModuleName, swappertypes.ModuleName} {
		require.JSONEq(t, string(genesis[name]), string(exported[name]), name)
	}
}

func TestCommitSeveralBlocks(t *testing.T) {
	db := dbm.NewMemDB()
	marsApp, err := app.NewMarsApp(log.NewNopLogger(), db)
	require.NoError(t, err)

	ctx := marsApp.NewContext(1, keepertest.GenesisTime)
	require.NoError(t, marsApp.InitChainer(ctx, app.NewDefaultGenesisState(marsApp.AppCodec())))
	poolID := keepertest.CreateTestPool(t, marsApp, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(2_000_000))

	for i := 0; i < 4; i++ {
		ctx = keepertest.NextBlock(t, marsApp, ctx, 6*time.Second)
	}
	require.Equal(t, int64(4), marsApp.LastBlockHeight())

	times, err := marsApp.DexKeeper.TwapSnapshotTimes(ctx, poolID, 0, ctx.BlockTime().Unix())
	require.NoError(t, err)
	require.Len(t, times, 4)

	// every store survives a reload from the same db
	reloaded, err := app.NewMarsApp(log.NewNopLogger(), db)
	require.NoError(t, err)
	require.Equal(t, int64(4), reloaded.LastBlockHeight())
	pool, err := reloaded.DexKeeper.GetPool(reloaded.NewContext(5, ctx.BlockTime()), poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000_000), pool.ReserveB)
}

func TestValidateGenesisRejectsBadModule(t *testing.T) {
	marsApp, err := app.NewMarsApp(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, err)

	genesis := app.NewDefaultGenesisState(marsApp.AppCodec())
	genesis[swappertypes.ModuleName] = json.RawMessage(`{"params":{"owner":"","max_hops":0},"routes":[]}`)

	err = app.ValidateGenesis(marsApp.AppCodec(), genesis)
	require.ErrorContains(t, err, swappertypes.ModuleName)
}
