package types

import (
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "oracle"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// PriceSourceKeyPrefix is the prefix for price sources keyed by denom
	PriceSourceKeyPrefix = []byte{0x02}
)

// PriceSourceKey returns the store key of the price source of denom.
func PriceSourceKey(denom string) []byte {
	return append(append([]byte{}, PriceSourceKeyPrefix...), []byte(denom)...)
}

// DefaultAuthority returns the governance module address as the only allowed
// authority for oracle parameter updates.
func DefaultAuthority() string {
	return authtypes.NewModuleAddress(govtypes.ModuleName).String()
}
