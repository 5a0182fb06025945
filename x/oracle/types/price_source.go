package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PriceSource describes how the price of a denom is resolved. The set of
// implementations is closed: FixedPriceSource, SpotPriceSource and
// TwapPriceSource. Values are only produced by PriceSourceUnchecked.Check, so
// a PriceSource always has a parsed pool id and a non-negative fixed price.
type PriceSource interface {
	isPriceSource()
	fmt.Stringer
}

// FixedPriceSource always returns Price.
type FixedPriceSource struct {
	Price math.LegacyDec
}

// SpotPriceSource simulates a swap of one whole unit in a pool and multiplies
// the result by the price of every route asset, in order.
type SpotPriceSource struct {
	PoolID      uint64
	RouteAssets []string
}

// TwapPriceSource is SpotPriceSource with the simulated swap replaced by the
// time-weighted average price over a window of WindowSize seconds. The start
// of the window may be off by at most Tolerance seconds.
type TwapPriceSource struct {
	PoolID      uint64
	WindowSize  uint64
	Tolerance   uint64
	RouteAssets []string
}

func (FixedPriceSource) isPriceSource() {}
func (SpotPriceSource) isPriceSource()  {}
func (TwapPriceSource) isPriceSource()  {}

func (ps FixedPriceSource) String() string {
	return "fixed:" + FormatDec(ps.Price)
}

func (ps SpotPriceSource) String() string {
	return fmt.Sprintf("spot:%d. Route: %s", ps.PoolID, strings.Join(ps.RouteAssets, ","))
}

func (ps TwapPriceSource) String() string {
	return fmt.Sprintf("twap:%d:%d:%d. Route: %s", ps.PoolID, ps.WindowSize, ps.Tolerance, strings.Join(ps.RouteAssets, ","))
}

// Kind returns a short label of the variant, used in metrics.
func Kind(ps PriceSource) string {
	switch ps.(type) {
	case FixedPriceSource:
		return "fixed"
	case SpotPriceSource:
		return "spot"
	case TwapPriceSource:
		return "twap"
	default:
		return "unknown"
	}
}

// RouteAssetsOf returns the route assets of ps, nil for fixed prices.
func RouteAssetsOf(ps PriceSource) []string {
	switch ps := ps.(type) {
	case SpotPriceSource:
		return ps.RouteAssets
	case TwapPriceSource:
		return ps.RouteAssets
	default:
		return nil
	}
}

// PoolOf returns the pool referenced by ps.
func PoolOf(ps PriceSource) (uint64, bool) {
	switch ps := ps.(type) {
	case SpotPriceSource:
		return ps.PoolID, true
	case TwapPriceSource:
		return ps.PoolID, true
	default:
		return 0, false
	}
}

// FormatDec renders d without trailing zeros, "0.5" rather than "0.500000000000000000".
func FormatDec(d math.LegacyDec) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// PriceSourceUnchecked is a price source as received from untrusted input.
// Exactly one of the variants must be set.
type PriceSourceUnchecked struct {
	Fixed *FixedUnchecked `json:"fixed,omitempty"`
	Spot  *SpotUnchecked  `json:"spot,omitempty"`
	Twap  *TwapUnchecked  `json:"twap,omitempty"`
}

// FixedUnchecked carries the price as a decimal string.
type FixedUnchecked struct {
	Price string `json:"price"`
}

// SpotUnchecked carries the pool reference as a string.
type SpotUnchecked struct {
	Pool        string   `json:"pool"`
	RouteAssets []string `json:"route_assets"`
}

// TwapUnchecked carries the pool reference as a string and the window in seconds.
type TwapUnchecked struct {
	Pool        string   `json:"pool"`
	WindowSize  uint64   `json:"window_size"`
	Tolerance   uint64   `json:"tolerance"`
	RouteAssets []string `json:"route_assets"`
}

// Check parses u into a PriceSource. It performs every check that does not
// need the store; the keeper verifies pools and route assets separately.
func (u PriceSourceUnchecked) Check() (PriceSource, error) {
	set := 0
	for _, v := range []bool{u.Fixed != nil, u.Spot != nil, u.Twap != nil} {
		if v {
			set++
		}
	}
	if set != 1 {
		return nil, ErrInvalidPriceSource.Wrapf("exactly one price source variant must be set, got %d", set)
	}

	switch {
	case u.Fixed != nil:
		price, err := math.LegacyNewDecFromStr(u.Fixed.Price)
		if err != nil {
			return nil, ErrInvalidPriceSource.Wrapf("invalid fixed price %q: %s", u.Fixed.Price, err)
		}
		if price.IsNegative() {
			return nil, ErrInvalidPriceSource.Wrapf("fixed price cannot be negative: %s", price)
		}
		return FixedPriceSource{Price: price}, nil

	case u.Spot != nil:
		poolID, err := ParsePoolID(u.Spot.Pool)
		if err != nil {
			return nil, err
		}
		if err := validateRouteAssetList(u.Spot.RouteAssets); err != nil {
			return nil, err
		}
		return SpotPriceSource{PoolID: poolID, RouteAssets: copyAssets(u.Spot.RouteAssets)}, nil

	default:
		poolID, err := ParsePoolID(u.Twap.Pool)
		if err != nil {
			return nil, err
		}
		if u.Twap.WindowSize == 0 {
			return nil, ErrInvalidPriceSource.Wrap("twap window size must be positive")
		}
		if u.Twap.Tolerance >= u.Twap.WindowSize {
			return nil, ErrInvalidPriceSource.Wrapf(
				"twap tolerance %d must be smaller than window size %d", u.Twap.Tolerance, u.Twap.WindowSize)
		}
		if err := validateRouteAssetList(u.Twap.RouteAssets); err != nil {
			return nil, err
		}
		return TwapPriceSource{
			PoolID:      poolID,
			WindowSize:  u.Twap.WindowSize,
			Tolerance:   u.Twap.Tolerance,
			RouteAssets: copyAssets(u.Twap.RouteAssets),
		}, nil
	}
}

// Unchecked converts ps back to its untrusted form.
func Unchecked(ps PriceSource) PriceSourceUnchecked {
	switch ps := ps.(type) {
	case FixedPriceSource:
		return PriceSourceUnchecked{Fixed: &FixedUnchecked{Price: ps.Price.String()}}
	case SpotPriceSource:
		return PriceSourceUnchecked{Spot: &SpotUnchecked{
			Pool:        strconv.FormatUint(ps.PoolID, 10),
			RouteAssets: copyAssets(ps.RouteAssets),
		}}
	case TwapPriceSource:
		return PriceSourceUnchecked{Twap: &TwapUnchecked{
			Pool:        strconv.FormatUint(ps.PoolID, 10),
			WindowSize:  ps.WindowSize,
			Tolerance:   ps.Tolerance,
			RouteAssets: copyAssets(ps.RouteAssets),
		}}
	default:
		panic(fmt.Sprintf("unknown price source %T", ps))
	}
}

// MarshalPriceSource encodes ps for the store.
func MarshalPriceSource(ps PriceSource) ([]byte, error) {
	return json.Marshal(Unchecked(ps))
}

// UnmarshalPriceSource decodes a stored price source.
func UnmarshalPriceSource(bz []byte) (PriceSource, error) {
	var u PriceSourceUnchecked
	if err := json.Unmarshal(bz, &u); err != nil {
		return nil, err
	}
	return u.Check()
}

// ParsePoolID parses a pool reference.
func ParsePoolID(pool string) (uint64, error) {
	id, err := strconv.ParseUint(pool, 10, 64)
	if err != nil {
		return 0, ErrInvalidPriceSource.Wrapf("invalid pool id %q", pool)
	}
	if id == 0 {
		return 0, ErrInvalidPriceSource.Wrap("pool id cannot be zero")
	}
	return id, nil
}

func validateRouteAssetList(assets []string) error {
	seen := make(map[string]struct{}, len(assets))
	for _, denom := range assets {
		if err := sdk.ValidateDenom(denom); err != nil {
			return ErrInvalidPriceSource.Wrapf("invalid route asset %q: %s", denom, err)
		}
		if _, ok := seen[denom]; ok {
			return ErrInvalidPriceSource.Wrapf("route asset %s listed twice", denom)
		}
		seen[denom] = struct{}{}
	}
	return nil
}

func copyAssets(assets []string) []string {
	if len(assets) == 0 {
		return nil
	}
	return append([]string(nil), assets...)
}

// CheckRouteAcyclic walks the route assets of denom through lookup and fails
// when denom can be reached from its own route. lookup returns the route
// assets of a registered denom, or nil when the denom has none.
func CheckRouteAcyclic(denom string, routeAssets []string, lookup func(denom string) ([]string, error)) error {
	visited := make(map[string]struct{})
	stack := append([]string(nil), routeAssets...)

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if next == denom {
			return ErrInvalidPriceSource.Wrapf("route assets contain a loop: denom %s seen twice", denom)
		}
		if _, ok := visited[next]; ok {
			continue
		}
		visited[next] = struct{}{}

		assets, err := lookup(next)
		if err != nil {
			return err
		}
		stack = append(stack, assets...)
	}
	return nil
}
