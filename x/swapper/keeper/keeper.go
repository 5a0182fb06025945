package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
	"github.com/mars-protocol/mars-common/x/swapper/types"
)

// Keeper stores routes and executes swaps along them.
type Keeper struct {
	storeService    store.KVStoreService
	bankKeeper      types.BankKeeper
	liquidityKeeper sharedkeeper.LiquidityKeeperV1
	router          sharedkeeper.SwapRouterV1
	authority       string
	moduleAddress   sdk.AccAddress
	metrics         *SwapperMetrics
}

// NewKeeper creates a new swapper Keeper instance
func NewKeeper(
	storeService store.KVStoreService,
	bankKeeper types.BankKeeper,
	liquidityKeeper sharedkeeper.LiquidityKeeperV1,
	router sharedkeeper.SwapRouterV1,
	authority string,
) Keeper {
	return Keeper{
		storeService:    storeService,
		bankKeeper:      bankKeeper,
		liquidityKeeper: liquidityKeeper,
		router:          router,
		authority:       authority,
		moduleAddress:   authtypes.NewModuleAddress(types.ModuleName),
		metrics:         NewSwapperMetrics(),
	}
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return runtime.KVStoreAdapter(k.storeService.OpenKVStore(ctx))
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetAuthority returns the governance authority of the module.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// GetModuleAddress returns the module account. Swaps run from it and only it
// may trigger a result transfer.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddress
}

// GetParams returns the module params, or the defaults when none are stored.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams validates and stores the module params.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}
