package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/mars-protocol/mars-common/testutil/keeper"
	"github.com/mars-protocol/mars-common/x/dex/types"
)

func TestGenesisExportImport(t *testing.T) {
	testApp, ctx := keepertest.SetupTestApp(t)
	keepertest.CreateTestPool(t, testApp, ctx, "uatom", "uusd", math.NewInt(1_000), math.NewInt(2_000))
	keepertest.CreateTestPool(t, testApp, ctx, "uosmo", "uusd", math.NewInt(3_000), math.NewInt(2_000))
	ctx = keepertest.NextBlock(t, testApp, ctx, 6*time.Second)

	exported, err := testApp.DexKeeper.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Pools, 2)
	require.Equal(t, uint64(3), exported.NextPoolID)
	require.Len(t, exported.Snapshots, 2)

	other, otherCtx := keepertest.SetupTestApp(t)
	require.NoError(t, other.DexKeeper.InitGenesis(otherCtx, *exported))

	reexported, err := other.DexKeeper.ExportGenesis(otherCtx)
	require.NoError(t, err)
	require.Equal(t, exported, reexported)

	// the pool counter survives the round trip
	id := keepertest.CreateTestPool(t, other, otherCtx, "uinj", "uusd", math.NewInt(1), math.NewInt(1))
	require.Equal(t, uint64(3), id)
}

func TestInitGenesisRejectsInvalid(t *testing.T) {
	testApp, ctx := keepertest.SetupTestApp(t)

	gs := types.DefaultGenesis()
	gs.Pools = []types.Pool{types.NewPool(5, "uatom", "uusd", math.NewInt(1), math.NewInt(1), 0)}
	require.ErrorIs(t, testApp.DexKeeper.InitGenesis(ctx, *gs), types.ErrInvalidPoolID)
}
