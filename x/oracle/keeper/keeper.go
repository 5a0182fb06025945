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

	"github.com/mars-protocol/mars-common/x/oracle/types"
	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

// Keeper maintains the price source registry and resolves prices.
type Keeper struct {
	storeService    store.KVStoreService
	bankKeeper      types.BankKeeper
	liquidityKeeper sharedkeeper.LiquidityKeeperV1
	authority       string // module authority (usually governance module account)
	metrics         *OracleMetrics
}

// NewKeeper creates a new Oracle Keeper instance
func NewKeeper(
	storeService store.KVStoreService,
	bankKeeper types.BankKeeper,
	liquidityKeeper sharedkeeper.LiquidityKeeperV1,
	authority string,
) Keeper {
	return Keeper{
		storeService:    storeService,
		bankKeeper:      bankKeeper,
		liquidityKeeper: liquidityKeeper,
		authority:       authority,
		metrics:         NewOracleMetrics(),
	}
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetAuthority returns the module's authority (governance account)
func (k Keeper) GetAuthority() string {
	return k.authority
}

func (k Keeper) kvStore(ctx context.Context) storetypes.KVStore {
	return runtime.KVStoreAdapter(k.storeService.OpenKVStore(ctx))
}

// GetParams gets all parameters from the store
func (k Keeper) GetParams(ctx context.Context) types.Params {
	bz := k.kvStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams sets the module parameters
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	k.kvStore(ctx).Set(types.ParamsKey, bz)
	return nil
}
