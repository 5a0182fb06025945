package types

import (
	"fmt"
)

// GenesisState defines the dex module's genesis state.
type GenesisState struct {
	Params     Params         `json:"params"`
	Pools      []Pool         `json:"pools"`
	NextPoolID uint64         `json:"next_pool_id"`
	Snapshots  []TwapSnapshot `json:"snapshots"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		NextPoolID: 1,
		Snapshots:  []TwapSnapshot{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	ids := make(map[uint64]struct{}, len(gs.Pools))
	pairs := make(map[string]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
		if _, ok := ids[pool.ID]; ok {
			return ErrPoolAlreadyExists.Wrapf("duplicate pool id %d", pool.ID)
		}
		pair := pool.DenomA + "/" + pool.DenomB
		if _, ok := pairs[pair]; ok {
			return ErrPoolAlreadyExists.Wrapf("duplicate pool for %s", pair)
		}
		if pool.ID >= gs.NextPoolID {
			return ErrInvalidPoolID.Wrapf("pool id %d must be below next pool id %d", pool.ID, gs.NextPoolID)
		}
		ids[pool.ID] = struct{}{}
		pairs[pair] = struct{}{}
	}

	for _, snap := range gs.Snapshots {
		if _, ok := ids[snap.PoolID]; !ok {
			return ErrPoolNotFound.Wrapf("snapshot references unknown pool %d", snap.PoolID)
		}
		if snap.CumulativePriceA.IsNil() || snap.CumulativePriceB.IsNil() {
			return fmt.Errorf("snapshot of pool %d at %d has nil accumulators", snap.PoolID, snap.Time)
		}
	}
	return nil
}
