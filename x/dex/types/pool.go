package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is a constant-product pool holding two assets. Reserves are held by the
// module account. The cumulative prices follow the Uniswap v2 accumulator:
// CumulativePriceA sums (ReserveB / ReserveA) * seconds elapsed, so the
// average price of DenomA in DenomB between two points in time is the
// difference of the accumulators divided by the elapsed seconds.
type Pool struct {
	ID               uint64         `json:"id"`
	DenomA           string         `json:"denom_a"`
	DenomB           string         `json:"denom_b"`
	ReserveA         math.Int       `json:"reserve_a"`
	ReserveB         math.Int       `json:"reserve_b"`
	CumulativePriceA math.LegacyDec `json:"cumulative_price_a"`
	CumulativePriceB math.LegacyDec `json:"cumulative_price_b"`
	LastUpdate       int64          `json:"last_update"`
}

// NewPool returns a pool with ordered denoms and zeroed accumulators.
func NewPool(id uint64, denomA, denomB string, reserveA, reserveB math.Int, now int64) Pool {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
		reserveA, reserveB = reserveB, reserveA
	}
	return Pool{
		ID:               id,
		DenomA:           denomA,
		DenomB:           denomB,
		ReserveA:         reserveA,
		ReserveB:         reserveB,
		CumulativePriceA: math.LegacyZeroDec(),
		CumulativePriceB: math.LegacyZeroDec(),
		LastUpdate:       now,
	}
}

// Denoms returns the pool assets in store order.
func (p Pool) Denoms() []string {
	return []string{p.DenomA, p.DenomB}
}

// HasDenom reports whether denom is one of the pool assets.
func (p Pool) HasDenom(denom string) bool {
	return denom == p.DenomA || denom == p.DenomB
}

// OtherDenom returns the asset paired with denom.
func (p Pool) OtherDenom(denom string) (string, error) {
	switch denom {
	case p.DenomA:
		return p.DenomB, nil
	case p.DenomB:
		return p.DenomA, nil
	default:
		return "", ErrInvalidTokenDenom.Wrapf("pool %d does not contain %s", p.ID, denom)
	}
}

// Reserves returns the reserves of offer and ask denoms in that order.
func (p Pool) Reserves(offerDenom, askDenom string) (math.Int, math.Int, error) {
	switch {
	case offerDenom == p.DenomA && askDenom == p.DenomB:
		return p.ReserveA, p.ReserveB, nil
	case offerDenom == p.DenomB && askDenom == p.DenomA:
		return p.ReserveB, p.ReserveA, nil
	default:
		return math.Int{}, math.Int{}, ErrInvalidTokenDenom.Wrapf(
			"pool %d (%s/%s) cannot swap %s for %s", p.ID, p.DenomA, p.DenomB, offerDenom, askDenom)
	}
}

// ApplySwap moves amountIn of offerDenom into the pool and amountOut of the
// other asset out of it.
func (p *Pool) ApplySwap(offerDenom string, amountIn, amountOut math.Int) {
	if offerDenom == p.DenomA {
		p.ReserveA = p.ReserveA.Add(amountIn)
		p.ReserveB = p.ReserveB.Sub(amountOut)
		return
	}
	p.ReserveB = p.ReserveB.Add(amountIn)
	p.ReserveA = p.ReserveA.Sub(amountOut)
}

// SpotPrice returns the reserve ratio price of base in quote.
func (p Pool) SpotPrice(base string) (math.LegacyDec, error) {
	quote, err := p.OtherDenom(base)
	if err != nil {
		return math.LegacyDec{}, err
	}
	reserveBase, reserveQuote, err := p.Reserves(base, quote)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !reserveBase.IsPositive() {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("pool %d has no %s", p.ID, base)
	}
	return math.LegacyNewDecFromInt(reserveQuote).QuoInt(reserveBase), nil
}

// Accumulate advances the cumulative prices to now using the current reserves.
func (p *Pool) Accumulate(now int64) {
	elapsed := now - p.LastUpdate
	if elapsed <= 0 {
		return
	}
	if p.ReserveA.IsPositive() && p.ReserveB.IsPositive() {
		a := math.LegacyNewDecFromInt(p.ReserveA)
		b := math.LegacyNewDecFromInt(p.ReserveB)
		p.CumulativePriceA = p.CumulativePriceA.Add(b.Quo(a).MulInt64(elapsed))
		p.CumulativePriceB = p.CumulativePriceB.Add(a.Quo(b).MulInt64(elapsed))
	}
	p.LastUpdate = now
}

// Validate checks the stateless invariants of a pool.
func (p Pool) Validate() error {
	if p.ID == 0 {
		return ErrInvalidPoolID.Wrap("pool id cannot be zero")
	}
	if err := sdk.ValidateDenom(p.DenomA); err != nil {
		return ErrInvalidTokenDenom.Wrapf("pool %d: %s", p.ID, err)
	}
	if err := sdk.ValidateDenom(p.DenomB); err != nil {
		return ErrInvalidTokenDenom.Wrapf("pool %d: %s", p.ID, err)
	}
	if p.DenomA >= p.DenomB {
		return ErrInvalidTokenDenom.Wrapf("pool %d: denoms must be distinct and ordered", p.ID)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || !p.ReserveA.IsPositive() || !p.ReserveB.IsPositive() {
		return ErrInsufficientLiquidity.Wrapf("pool %d: reserves must be positive", p.ID)
	}
	if p.CumulativePriceA.IsNil() || p.CumulativePriceB.IsNil() {
		return fmt.Errorf("pool %d: cumulative prices cannot be nil", p.ID)
	}
	return nil
}

// TwapSnapshot records the accumulators of a pool at a point in time.
type TwapSnapshot struct {
	PoolID           uint64         `json:"pool_id"`
	Time             int64          `json:"time"`
	CumulativePriceA math.LegacyDec `json:"cumulative_price_a"`
	CumulativePriceB math.LegacyDec `json:"cumulative_price_b"`
}

// SnapshotOf captures the accumulators of p, which must already be accumulated to now.
func SnapshotOf(p Pool) TwapSnapshot {
	return TwapSnapshot{
		PoolID:           p.ID,
		Time:             p.LastUpdate,
		CumulativePriceA: p.CumulativePriceA,
		CumulativePriceB: p.CumulativePriceB,
	}
}

// Cumulative returns the accumulator for the price of base.
func (s TwapSnapshot) Cumulative(p Pool, base string) (math.LegacyDec, error) {
	switch base {
	case p.DenomA:
		return s.CumulativePriceA, nil
	case p.DenomB:
		return s.CumulativePriceB, nil
	default:
		return math.LegacyDec{}, ErrInvalidTokenDenom.Wrapf("pool %d does not contain %s", p.ID, base)
	}
}
