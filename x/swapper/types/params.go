package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultMaxHops bounds the number of steps of a stored route.
const DefaultMaxHops uint32 = 5

// DefaultTwapWindow is the averaging window, in seconds, of the reference
// price the minimum received of a swap is derived from.
const DefaultTwapWindow uint64 = 600

// Params defines the parameters for the swapper module.
type Params struct {
	// Owner may set routes.
	Owner string `json:"owner"`
	// MaxHops is the longest route that can be stored.
	MaxHops uint32 `json:"max_hops"`
	// TwapWindow is how far back, in seconds, the reference price of a swap
	// starts.
	TwapWindow uint64 `json:"twap_window"`
}

// DefaultParams returns default swapper parameters with no owner.
func DefaultParams() Params {
	return Params{
		Owner:      "",
		MaxHops:    DefaultMaxHops,
		TwapWindow: DefaultTwapWindow,
	}
}

// Validate validates the swapper parameters
func (p Params) Validate() error {
	if p.Owner != "" {
		if _, err := sdk.AccAddressFromBech32(p.Owner); err != nil {
			return ErrInvalidParams.Wrapf("invalid owner address: %s", err)
		}
	}
	if p.MaxHops == 0 {
		return ErrInvalidParams.Wrap("max hops must be positive")
	}
	if p.TwapWindow == 0 {
		return ErrInvalidParams.Wrap("twap window must be positive")
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("owner=%s max_hops=%d twap_window=%d", p.Owner, p.MaxHops, p.TwapWindow)
}
