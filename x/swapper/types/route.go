package types

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

// AssetInfo names either a native denom or a contract token. Only native
// denoms can be routed.
type AssetInfo struct {
	NativeDenom  string `json:"native_denom,omitempty"`
	ContractAddr string `json:"contract_addr,omitempty"`
}

// NativeAsset returns the AssetInfo of a native denom.
func NativeAsset(denom string) AssetInfo {
	return AssetInfo{NativeDenom: denom}
}

// IsNative reports whether a is a native denom.
func (a AssetInfo) IsNative() bool {
	return a.ContractAddr == "" && a.NativeDenom != ""
}

func (a AssetInfo) String() string {
	if a.IsNative() {
		return a.NativeDenom
	}
	return a.ContractAddr
}

// RouteStep is one hop of a route. The set of implementations is closed:
// SwapOperationStep and PoolRouteStep.
type RouteStep interface {
	isRouteStep()
	// Validate checks the step given the denom flowing into it.
	Validate(ctx context.Context, q PoolQuerier, expectedOffer string) error
	// AskDenom is the denom flowing out of the step.
	AskDenom() string
	fmt.Stringer
}

// SwapOperationStep swaps an explicit offer asset for an explicit ask asset in a pool.
type SwapOperationStep struct {
	PoolID     uint64    `json:"pool_id"`
	OfferAsset AssetInfo `json:"offer_asset"`
	AskAsset   AssetInfo `json:"ask_asset"`
}

// PoolRouteStep swaps whatever the previous step produced for TokenOutDenom.
type PoolRouteStep struct {
	PoolID        uint64 `json:"pool_id"`
	TokenOutDenom string `json:"token_out_denom"`
}

func (SwapOperationStep) isRouteStep() {}
func (PoolRouteStep) isRouteStep()     {}

// Validate rejects contract tokens and an offer asset other than expectedOffer.
func (s SwapOperationStep) Validate(_ context.Context, _ PoolQuerier, expectedOffer string) error {
	if !s.OfferAsset.IsNative() || !s.AskAsset.IsNative() {
		return ErrInvalidRoute.Wrap("contract tokens are not supported")
	}
	if err := sdk.ValidateDenom(s.OfferAsset.NativeDenom); err != nil {
		return ErrInvalidRoute.Wrapf("invalid offer denom: %s", err)
	}
	if err := sdk.ValidateDenom(s.AskAsset.NativeDenom); err != nil {
		return ErrInvalidRoute.Wrapf("invalid ask denom: %s", err)
	}
	if s.OfferAsset.NativeDenom != expectedOffer {
		return ErrInvalidRoute.Wrapf("step offer denom %s does not match expected %s", s.OfferAsset.NativeDenom, expectedOffer)
	}
	return nil
}

// AskDenom implements RouteStep.
func (s SwapOperationStep) AskDenom() string {
	return s.AskAsset.NativeDenom
}

// String renders "<offer>:<ask>".
func (s SwapOperationStep) String() string {
	return s.OfferAsset.String() + ":" + s.AskAsset.String()
}

// Validate checks that the pool holds both expectedOffer and TokenOutDenom.
func (s PoolRouteStep) Validate(ctx context.Context, q PoolQuerier, expectedOffer string) error {
	if err := sdk.ValidateDenom(s.TokenOutDenom); err != nil {
		return ErrInvalidRoute.Wrapf("invalid token out denom: %s", err)
	}
	denoms, err := q.PoolDenoms(ctx, s.PoolID)
	if err != nil {
		return ErrInvalidRoute.Wrapf("query pool %d: %s", s.PoolID, err)
	}
	if !containsDenom(denoms, expectedOffer) {
		return ErrInvalidRoute.Wrapf("pool %d does not contain input denom %s", s.PoolID, expectedOffer)
	}
	if !containsDenom(denoms, s.TokenOutDenom) {
		return ErrInvalidRoute.Wrapf("pool %d does not contain output denom %s", s.PoolID, s.TokenOutDenom)
	}
	return nil
}

// AskDenom implements RouteStep.
func (s PoolRouteStep) AskDenom() string {
	return s.TokenOutDenom
}

// String renders "<pool>:<ask>".
func (s PoolRouteStep) String() string {
	return strconv.FormatUint(s.PoolID, 10) + ":" + s.TokenOutDenom
}

func containsDenom(denoms []string, denom string) bool {
	for _, d := range denoms {
		if d == denom {
			return true
		}
	}
	return false
}

// Route is an ordered list of steps from one denom to another.
type Route struct {
	Steps []RouteStep
}

// NewRoute builds a route from steps.
func NewRoute(steps ...RouteStep) Route {
	return Route{Steps: steps}
}

// Validate checks that the route is a continuous path from denomIn to
// denomOut that never produces the same denom twice.
func (r Route) Validate(ctx context.Context, q PoolQuerier, denomIn, denomOut string) error {
	if len(r.Steps) == 0 {
		return ErrInvalidRoute.Wrap("the route must contain at least one step")
	}

	prevDenomOut := denomIn
	seen := map[string]struct{}{denomIn: {}}
	for _, step := range r.Steps {
		if err := step.Validate(ctx, q, prevDenomOut); err != nil {
			return err
		}
		ask := step.AskDenom()
		if _, ok := seen[ask]; ok {
			return ErrInvalidRoute.Wrapf("route contains a loop: denom %s seen twice", ask)
		}
		seen[ask] = struct{}{}
		prevDenomOut = ask
	}

	if prevDenomOut != denomOut {
		return ErrInvalidRoute.Wrapf("the route's output denom %s does not match the desired output %s", prevDenomOut, denomOut)
	}
	return nil
}

// SwapOperations resolves the steps into concrete operations starting at denomIn.
func (r Route) SwapOperations(denomIn string) []sharedkeeper.SwapOperation {
	ops := make([]sharedkeeper.SwapOperation, 0, len(r.Steps))
	prev := denomIn
	for _, step := range r.Steps {
		var poolID uint64
		switch step := step.(type) {
		case SwapOperationStep:
			poolID, prev = step.PoolID, step.OfferAsset.NativeDenom
		case PoolRouteStep:
			poolID = step.PoolID
		}
		ops = append(ops, sharedkeeper.SwapOperation{PoolID: poolID, DenomIn: prev, DenomOut: step.AskDenom()})
		prev = step.AskDenom()
	}
	return ops
}

// String renders the steps joined by "|".
func (r Route) String() string {
	parts := make([]string, len(r.Steps))
	for i, step := range r.Steps {
		parts[i] = step.String()
	}
	return strings.Join(parts, "|")
}

type routeStepJSON struct {
	SwapOperation *SwapOperationStep `json:"swap_operation,omitempty"`
	Pool          *PoolRouteStep     `json:"pool,omitempty"`
}

type routeJSON struct {
	Steps []routeStepJSON `json:"steps"`
}

// MarshalJSON encodes each step under the name of its variant.
func (r Route) MarshalJSON() ([]byte, error) {
	out := routeJSON{Steps: make([]routeStepJSON, len(r.Steps))}
	for i, step := range r.Steps {
		switch step := step.(type) {
		case SwapOperationStep:
			out.Steps[i].SwapOperation = &step
		case PoolRouteStep:
			out.Steps[i].Pool = &step
		default:
			return nil, fmt.Errorf("unknown route step %T", step)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (r *Route) UnmarshalJSON(bz []byte) error {
	var in routeJSON
	if err := json.Unmarshal(bz, &in); err != nil {
		return err
	}
	steps := make([]RouteStep, len(in.Steps))
	for i, step := range in.Steps {
		switch {
		case step.SwapOperation != nil && step.Pool == nil:
			steps[i] = *step.SwapOperation
		case step.Pool != nil && step.SwapOperation == nil:
			steps[i] = *step.Pool
		default:
			return fmt.Errorf("route step %d must set exactly one variant", i)
		}
	}
	r.Steps = steps
	return nil
}
