// Package keeper provides shared keeper interfaces and utilities for cross-module communication.
package keeper

import (
	errorsmod "cosmossdk.io/errors"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
)

// ValidateAuthority checks that the provided authority matches the expected authority.
// This is used for governance-only operations like parameter updates.
//
//	if err := keeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
//	    return nil, err
//	}
func ValidateAuthority(expected, actual string) error {
	if expected != actual {
		return govtypes.ErrInvalidSigner.Wrapf(
			"invalid authority; expected %s, got %s",
			expected,
			actual,
		)
	}
	return nil
}

// ValidateOwner checks that sender is the configured owner of a module.
// An unset owner rejects everyone. The returned error wraps the module's own
// unauthorized sentinel so callers can match it with errorsmod.IsOf.
func ValidateOwner(unauthorized *errorsmod.Error, owner, sender, action string) error {
	if owner == "" || owner != sender {
		return unauthorized.Wrapf("%s is not authorized to %s", sender, action)
	}
	return nil
}
