package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// DefaultMaxSnapshotAge keeps one day of per-block snapshots.
const DefaultMaxSnapshotAge int64 = 24 * 60 * 60

// Params defines the parameters of the liquidity module.
type Params struct {
	// SwapFee is charged on the offer amount of every hop.
	SwapFee math.LegacyDec `json:"swap_fee"`
	// MaxSnapshotAge is how long, in seconds, cumulative price snapshots are kept.
	MaxSnapshotAge int64 `json:"max_snapshot_age"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		SwapFee:        math.LegacyNewDecWithPrec(3, 3), // 0.3%
		MaxSnapshotAge: DefaultMaxSnapshotAge,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.SwapFee.IsNil() {
		return ErrInvalidParams.Wrap("swap fee cannot be nil")
	}
	if p.SwapFee.IsNegative() || p.SwapFee.GTE(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("swap fee must be in [0, 1): %s", p.SwapFee)
	}
	if p.MaxSnapshotAge <= 0 {
		return ErrInvalidParams.Wrapf("max snapshot age must be positive: %d", p.MaxSnapshotAge)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("swap_fee=%s max_snapshot_age=%ds", p.SwapFee, p.MaxSnapshotAge)
}
