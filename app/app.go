package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdkstd "github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"

	dexmodule "github.com/mars-protocol/mars-common/x/dex"
	dexkeeper "github.com/mars-protocol/mars-common/x/dex/keeper"
	dextypes "github.com/mars-protocol/mars-common/x/dex/types"
	oraclekeeper "github.com/mars-protocol/mars-common/x/oracle/keeper"
	oracletypes "github.com/mars-protocol/mars-common/x/oracle/types"
	swapperkeeper "github.com/mars-protocol/mars-common/x/swapper/keeper"
	swappertypes "github.com/mars-protocol/mars-common/x/swapper/types"
)

const Name = "mars"

// module account permissions
var maccPerms = map[string][]string{
	minttypes.ModuleName:    {authtypes.Minter},
	dextypes.ModuleName:     nil,
	swappertypes.ModuleName: nil,
	oracletypes.ModuleName:  nil,
}

// GetMaccPerms returns a copy of the module account permissions
func GetMaccPerms() map[string][]string {
	dupMaccPerms := make(map[string][]string, len(maccPerms))
	for k, v := range maccPerms {
		dupMaccPerms[k] = v
	}
	return dupMaccPerms
}

// BlockedModuleAccountAddrs returns all the app's blocked module account
// addresses.
func BlockedModuleAccountAddrs() map[string]bool {
	modAccAddrs := make(map[string]bool)
	for acc := range GetMaccPerms() {
		modAccAddrs[authtypes.NewModuleAddress(acc).String()] = true
	}
	return modAccAddrs
}

// MarsApp wires the dex, oracle and swapper keepers on top of the SDK auth
// and bank keepers over a single commit multistore. It has no consensus
// engine: blocks are driven by the caller through NewContext, EndBlock and
// Commit.
type MarsApp struct {
	logger   log.Logger
	cms      storetypes.CommitMultiStore
	appCodec codec.Codec
	keys     map[string]*storetypes.KVStoreKey

	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.BaseKeeper
	DexKeeper     dexkeeper.Keeper
	OracleKeeper  oraclekeeper.Keeper
	SwapperKeeper swapperkeeper.Keeper

	dexModule dexmodule.AppModule
	authority string
}

// NewMarsApp returns an initialized MarsApp backed by db.
func NewMarsApp(logger log.Logger, db dbm.DB) (*MarsApp, error) {
	SetConfig()

	registry := codectypes.NewInterfaceRegistry()
	sdkstd.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	appCodec := codec.NewProtoCodec(registry)

	keys := storetypes.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		dextypes.StoreKey,
		oracletypes.StoreKey,
		swappertypes.StoreKey,
	)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		// nil db: each store gets its own prefix of the root db
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	app := &MarsApp{
		logger:    logger,
		cms:       cms,
		appCodec:  appCodec,
		keys:      keys,
		authority: authtypes.NewModuleAddress(govtypes.ModuleName).String(),
	}

	app.AccountKeeper = authkeeper.NewAccountKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		app.authority,
	)
	app.BankKeeper = bankkeeper.NewBaseKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		app.AccountKeeper,
		BlockedModuleAccountAddrs(),
		app.authority,
		logger,
	)
	app.DexKeeper = dexkeeper.NewKeeper(
		runtime.NewKVStoreService(keys[dextypes.StoreKey]),
		app.BankKeeper,
		app.authority,
	)
	app.OracleKeeper = oraclekeeper.NewKeeper(
		runtime.NewKVStoreService(keys[oracletypes.StoreKey]),
		app.BankKeeper,
		app.DexKeeper,
		app.authority,
	)
	app.SwapperKeeper = swapperkeeper.NewKeeper(
		runtime.NewKVStoreService(keys[swappertypes.StoreKey]),
		app.BankKeeper,
		app.DexKeeper,
		app.DexKeeper,
		app.authority,
	)
	app.dexModule = dexmodule.NewAppModule(app.DexKeeper)

	return app, nil
}

// Name returns the name of the App
func (app *MarsApp) Name() string { return Name }

// AppCodec returns the app codec.
func (app *MarsApp) AppCodec() codec.Codec { return app.appCodec }

// Authority returns the governance account allowed to update params.
func (app *MarsApp) Authority() string { return app.authority }

// GetKey returns the KVStoreKey for the provided store key.
func (app *MarsApp) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// LastBlockHeight returns the height of the last committed block.
func (app *MarsApp) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// NewContext returns a context over the working state for a block at
// height and blockTime.
func (app *MarsApp) NewContext(height int64, blockTime time.Time) sdk.Context {
	header := cmtproto.Header{ChainID: Name, Height: height, Time: blockTime}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// InitChainer initializes every module from genesis. Module order matters:
// routes and price sources are checked against the pools.
func (app *MarsApp) InitChainer(ctx sdk.Context, genesisState GenesisState) error {
	for _, name := range []string{minttypes.ModuleName, dextypes.ModuleName, swappertypes.ModuleName} {
		app.AccountKeeper.GetModuleAccount(ctx, name)
	}

	if bz, ok := genesisState[banktypes.ModuleName]; ok {
		var bankGenesis banktypes.GenesisState
		if err := app.appCodec.UnmarshalJSON(bz, &bankGenesis); err != nil {
			return fmt.Errorf("unmarshal %s genesis: %w", banktypes.ModuleName, err)
		}
		if err := bankGenesis.Validate(); err != nil {
			return fmt.Errorf("invalid %s genesis: %w", banktypes.ModuleName, err)
		}
		app.BankKeeper.InitGenesis(ctx, &bankGenesis)
	}

	modules := []struct {
		name string
		init func(context.Context, json.RawMessage) error
	}{
		{dextypes.ModuleName, func(ctx context.Context, bz json.RawMessage) error {
			var gs dextypes.GenesisState
			if err := json.Unmarshal(bz, &gs); err != nil {
				return err
			}
			return app.DexKeeper.InitGenesis(ctx, gs)
		}},
		{oracletypes.ModuleName, func(ctx context.Context, bz json.RawMessage) error {
			var gs oracletypes.GenesisState
			if err := json.Unmarshal(bz, &gs); err != nil {
				return err
			}
			return app.OracleKeeper.InitGenesis(ctx, gs)
		}},
		{swappertypes.ModuleName, func(ctx context.Context, bz json.RawMessage) error {
			var gs swappertypes.GenesisState
			if err := json.Unmarshal(bz, &gs); err != nil {
				return err
			}
			return app.SwapperKeeper.InitGenesis(ctx, gs)
		}},
	}
	for _, m := range modules {
		bz, ok := genesisState[m.name]
		if !ok {
			continue
		}
		if err := m.init(ctx, bz); err != nil {
			return fmt.Errorf("init %s genesis: %w", m.name, err)
		}
	}

	app.logger.Info("genesis initialized", "modules", len(genesisState))
	return nil
}

// ExportGenesis returns the current state of every module as genesis.
func (app *MarsApp) ExportGenesis(ctx sdk.Context) (GenesisState, error) {
	genesis := make(GenesisState)

	bankGenesis := app.BankKeeper.ExportGenesis(ctx)
	bz, err := app.appCodec.MarshalJSON(bankGenesis)
	if err != nil {
		return nil, fmt.Errorf("marshal %s genesis: %w", banktypes.ModuleName, err)
	}
	genesis[banktypes.ModuleName] = bz

	dexGenesis, err := app.DexKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	oracleGenesis, err := app.OracleKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	swapperGenesis, err := app.SwapperKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	for name, gs := range map[string]any{
		dextypes.ModuleName:     dexGenesis,
		oracletypes.ModuleName:  oracleGenesis,
		swappertypes.ModuleName: swapperGenesis,
	} {
		if genesis[name], err = json.Marshal(gs); err != nil {
			return nil, fmt.Errorf("marshal %s genesis: %w", name, err)
		}
	}
	return genesis, nil
}

// EndBlocker runs the end block logic of every module.
func (app *MarsApp) EndBlocker(ctx sdk.Context) error {
	return app.dexModule.EndBlock(ctx)
}

// Commit persists the working state and returns the new version.
func (app *MarsApp) Commit() int64 {
	return app.cms.Commit().Version
}
