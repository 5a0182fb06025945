package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/dex/types"
)

// SetTwapSnapshot stores the accumulators of a pool at snap.Time.
func (k Keeper) SetTwapSnapshot(ctx context.Context, snap types.TwapSnapshot) error {
	bz, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("SetTwapSnapshot: marshal pool %d: %w", snap.PoolID, err)
	}
	k.getStore(ctx).Set(types.TwapSnapshotKey(snap.PoolID, snap.Time), bz)
	return nil
}

// GetTwapSnapshot returns the snapshot of a pool taken at unixTime.
func (k Keeper) GetTwapSnapshot(ctx context.Context, poolID uint64, unixTime int64) (types.TwapSnapshot, error) {
	bz := k.getStore(ctx).Get(types.TwapSnapshotKey(poolID, unixTime))
	if bz == nil {
		return types.TwapSnapshot{}, types.ErrSnapshotNotFound.Wrapf("pool %d has no snapshot at %d", poolID, unixTime)
	}
	var snap types.TwapSnapshot
	if err := json.Unmarshal(bz, &snap); err != nil {
		return types.TwapSnapshot{}, fmt.Errorf("GetTwapSnapshot: unmarshal: %w", err)
	}
	return snap, nil
}

// TwapSnapshotTimes returns the times of the snapshots of poolID within
// [from, to], ascending.
func (k Keeper) TwapSnapshotTimes(ctx context.Context, poolID uint64, from, to int64) ([]int64, error) {
	if _, err := k.GetPool(ctx, poolID); err != nil {
		return nil, err
	}
	if from < 0 {
		from = 0
	}
	if to < from {
		return nil, nil
	}

	store := prefix.NewStore(k.getStore(ctx), types.TwapSnapshotPoolPrefix(poolID))
	iterator := store.Iterator(sdk.Uint64ToBigEndian(uint64(from)), sdk.Uint64ToBigEndian(uint64(to)+1))
	defer iterator.Close()

	var times []int64
	for ; iterator.Valid(); iterator.Next() {
		times = append(times, int64(binary.BigEndian.Uint64(iterator.Key())))
	}
	return times, nil
}

// ArithmeticTwapToNow returns the average price of baseDenom in quoteDenom
// between the snapshot taken at start and the current block time.
func (k Keeper) ArithmeticTwapToNow(ctx context.Context, poolID uint64, baseDenom, quoteDenom string, start int64) (twap math.LegacyDec, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	other, err := pool.OtherDenom(baseDenom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if other != quoteDenom {
		return math.LegacyDec{}, types.ErrInvalidTokenDenom.Wrapf("pool %d does not pair %s with %s", poolID, baseDenom, quoteDenom)
	}

	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if start >= now {
		return math.LegacyDec{}, types.ErrInvalidTwapWindow.Wrapf("start %d must be before now %d", start, now)
	}
	snap, err := k.GetTwapSnapshot(ctx, poolID, start)
	if err != nil {
		return math.LegacyDec{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			twap, err = math.LegacyDec{}, types.ErrOverflow.Wrapf("twap of pool %d: %v", poolID, r)
		}
	}()

	pool.Accumulate(now)
	end, err := types.SnapshotOf(pool).Cumulative(pool, baseDenom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	begin, err := snap.Cumulative(pool, baseDenom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return end.Sub(begin).QuoInt64(now - start), nil
}

// IterateTwapSnapshots walks all snapshots ordered by pool then time.
func (k Keeper) IterateTwapSnapshots(ctx context.Context, cb func(snap types.TwapSnapshot) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.TwapSnapshotPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var snap types.TwapSnapshot
		if err := json.Unmarshal(iterator.Value(), &snap); err != nil {
			return fmt.Errorf("IterateTwapSnapshots: unmarshal: %w", err)
		}
		if cb(snap) {
			break
		}
	}
	return nil
}

// PruneTwapSnapshots deletes snapshots of poolID strictly older than cutoff.
// The newest snapshot before cutoff is kept as the start of the oldest window.
func (k Keeper) PruneTwapSnapshots(ctx context.Context, poolID uint64, cutoff int64) int {
	if cutoff <= 0 {
		return 0
	}
	store := prefix.NewStore(k.getStore(ctx), types.TwapSnapshotPoolPrefix(poolID))
	iterator := store.Iterator(nil, sdk.Uint64ToBigEndian(uint64(cutoff)))

	var keys [][]byte
	for ; iterator.Valid(); iterator.Next() {
		keys = append(keys, iterator.Key())
	}
	iterator.Close()

	if len(keys) > 0 {
		keys = keys[:len(keys)-1]
	}
	for _, key := range keys {
		store.Delete(key)
	}
	return len(keys)
}
