package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/dex/types"
)

// CreatePool creates a pool funded by creator. Denoms are stored in
// lexicographic order. Returns ErrPoolAlreadyExists if the pair exists.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, denomA, denomB string, amountA, amountB math.Int) (types.Pool, error) {
	if denomA == denomB {
		return types.Pool{}, types.ErrInvalidTokenDenom.Wrap("cannot create pool with identical tokens")
	}
	if !amountA.IsPositive() || !amountB.IsPositive() {
		return types.Pool{}, types.ErrInvalidAmount.Wrap("amounts must be positive")
	}
	if _, err := k.GetPoolByDenoms(ctx, denomA, denomB); err == nil {
		return types.Pool{}, types.ErrPoolAlreadyExists.Wrapf("pool already exists for token pair %s/%s", denomA, denomB)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := types.NewPool(k.nextPoolID(ctx), denomA, denomB, amountA, amountB, sdkCtx.BlockTime().Unix())
	if err := pool.Validate(); err != nil {
		return types.Pool{}, err
	}

	deposit := sdk.NewCoins(sdk.NewCoin(pool.DenomA, pool.ReserveA), sdk.NewCoin(pool.DenomB, pool.ReserveB))
	if err := k.bankKeeper.SendCoins(ctx, creator, k.moduleAddress, deposit); err != nil {
		return types.Pool{}, fmt.Errorf("CreatePool: fund pool: %w", err)
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}
	k.setPoolByDenoms(ctx, pool)
	k.setNextPoolID(ctx, pool.ID+1)
	// the first snapshot lets a TWAP window start at pool creation
	if err := k.SetTwapSnapshot(ctx, types.SnapshotOf(pool)); err != nil {
		return types.Pool{}, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(sdk.AttributeKeyAmount, deposit.String()),
		),
	)
	k.metrics.PoolsCreated.Inc()
	k.Logger(ctx).Info("pool created", "pool_id", pool.ID, "denoms", pool.DenomA+"/"+pool.DenomB)

	return pool, nil
}

// GetPool retrieves a pool by its unique numeric ID.
// Returns ErrPoolNotFound if the pool does not exist.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.ID, err)
	}
	k.getStore(ctx).Set(types.PoolKey(pool.ID), bz)
	return nil
}

// GetPoolByDenoms retrieves a pool by its token pair (order-independent).
func (k Keeper) GetPoolByDenoms(ctx context.Context, denomA, denomB string) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolByDenomsKey(denomA, denomB))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool not found for token pair %s/%s", denomA, denomB)
	}
	return k.GetPool(ctx, binary.BigEndian.Uint64(bz))
}

func (k Keeper) setPoolByDenoms(ctx context.Context, pool types.Pool) {
	k.getStore(ctx).Set(types.PoolByDenomsKey(pool.DenomA, pool.DenomB), sdk.Uint64ToBigEndian(pool.ID))
}

// PoolDenoms returns the assets of a pool.
func (k Keeper) PoolDenoms(ctx context.Context, poolID uint64) ([]string, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return pool.Denoms(), nil
}

// IteratePools iterates over all pools in id order.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

func (k Keeper) nextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setNextPoolID(ctx context.Context, id uint64) {
	k.getStore(ctx).Set(types.PoolCountKey, sdk.Uint64ToBigEndian(id))
}
