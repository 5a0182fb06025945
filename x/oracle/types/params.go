package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultMaxRouteDepth bounds how many route assets may be chained while
// resolving a single price.
const DefaultMaxRouteDepth uint32 = 8

// Params defines the parameters for the oracle module.
type Params struct {
	// Owner may set and remove price sources.
	Owner string `json:"owner"`
	// BaseDenom is the denom every price is quoted in.
	BaseDenom string `json:"base_denom"`
	// MaxRouteDepth bounds the recursion through route assets.
	MaxRouteDepth uint32 `json:"max_route_depth"`
}

// DefaultParams returns default oracle parameters. The owner is unset so no
// price source can be registered until governance names one.
func DefaultParams() Params {
	return Params{
		Owner:         "",
		BaseDenom:     "uusd",
		MaxRouteDepth: DefaultMaxRouteDepth,
	}
}

// Validate validates the oracle parameters
func (p Params) Validate() error {
	if p.Owner != "" {
		if _, err := sdk.AccAddressFromBech32(p.Owner); err != nil {
			return ErrInvalidParams.Wrapf("invalid owner address: %s", err)
		}
	}
	if err := sdk.ValidateDenom(p.BaseDenom); err != nil {
		return ErrInvalidParams.Wrapf("invalid base denom: %s", err)
	}
	if p.MaxRouteDepth == 0 {
		return ErrInvalidParams.Wrap("max route depth must be positive")
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("owner=%s base_denom=%s max_route_depth=%d", p.Owner, p.BaseDenom, p.MaxRouteDepth)
}
