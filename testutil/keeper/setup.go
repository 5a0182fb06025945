package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/crypto"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktestutil "github.com/cosmos/cosmos-sdk/x/bank/testutil"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/stretchr/testify/require"

	"github.com/mars-protocol/mars-common/app"
)

// GenesisTime is the block time of the first block of every test app.
var GenesisTime = time.Unix(1_700_000_000, 0).UTC()

// SetupTestApp initializes an in-memory app with default genesis at height 1.
func SetupTestApp(t testing.TB) (*app.MarsApp, sdk.Context) {
	t.Helper()

	testApp, err := app.NewMarsApp(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, err)

	ctx := testApp.NewContext(1, GenesisTime)
	require.NoError(t, testApp.InitChainer(ctx, app.NewDefaultGenesisState(testApp.AppCodec())))

	return testApp, ctx
}

// TestAddr derives a deterministic account address from name.
func TestAddr(name string) sdk.AccAddress {
	return sdk.AccAddress(crypto.AddressHash([]byte(name)))
}

// FundAccount mints coins into addr.
func FundAccount(t testing.TB, testApp *app.MarsApp, ctx sdk.Context, addr sdk.AccAddress, coins sdk.Coins) {
	t.Helper()
	require.NoError(t, banktestutil.FundAccount(ctx, testApp.BankKeeper, addr, coins))
}

// FundModuleAccount mints coins into the account of module. Module accounts
// are blocked from receiving regular sends.
func FundModuleAccount(t testing.TB, testApp *app.MarsApp, ctx sdk.Context, module string, coins sdk.Coins) {
	t.Helper()
	require.NoError(t, banktestutil.FundModuleAccount(ctx, testApp.BankKeeper, module, coins))
}

// SetDenomMetadata registers denom with a display unit of the given exponent.
func SetDenomMetadata(testApp *app.MarsApp, ctx sdk.Context, denom string, exponent uint32) {
	display := denom + "-display"
	testApp.BankKeeper.SetDenomMetaData(ctx, banktypes.Metadata{
		Base:    denom,
		Display: display,
		Name:    denom,
		Symbol:  denom,
		DenomUnits: []*banktypes.DenomUnit{
			{Denom: denom, Exponent: 0},
			{Denom: display, Exponent: exponent},
		},
	})
}

// CreateTestPool funds a creator and creates a pool from its deposit.
func CreateTestPool(t testing.TB, testApp *app.MarsApp, ctx sdk.Context, denomA, denomB string, amountA, amountB math.Int) uint64 {
	t.Helper()

	creator := TestAddr("pool-creator")
	FundAccount(t, testApp, ctx, creator, sdk.NewCoins(sdk.NewCoin(denomA, amountA), sdk.NewCoin(denomB, amountB)))

	pool, err := testApp.DexKeeper.CreatePool(ctx, creator, denomA, denomB, amountA, amountB)
	require.NoError(t, err)
	return pool.ID
}

// NextBlock ends the block of ctx, commits it and returns a context for the
// following block blockTime later.
func NextBlock(t testing.TB, testApp *app.MarsApp, ctx sdk.Context, blockTime time.Duration) sdk.Context {
	t.Helper()

	require.NoError(t, testApp.EndBlocker(ctx))
	testApp.Commit()
	return testApp.NewContext(ctx.BlockHeight()+1, ctx.BlockTime().Add(blockTime))
}
