package types

import (
	"fmt"
)

const (
	// ModuleName defines the module name
	ModuleName = "swapper"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// RouteKeyPrefix is the prefix for routes keyed by (denom_in, denom_out)
	RouteKeyPrefix = []byte{0x02}
)

// RouteKey returns the store key of the route from denomIn to denomOut.
// denomIn is length prefixed so distinct pairs never share a key.
func RouteKey(denomIn, denomOut string) []byte {
	key := append([]byte{}, RouteKeyPrefix...)
	key = append(key, byte(len(denomIn)))
	key = append(key, []byte(denomIn)...)
	return append(key, []byte(denomOut)...)
}

// ParseRouteKey splits a route key, without RouteKeyPrefix, into its denoms.
func ParseRouteKey(key []byte) (denomIn, denomOut string, err error) {
	if len(key) == 0 || int(key[0]) > len(key)-1 {
		return "", "", fmt.Errorf("malformed route key %x", key)
	}
	n := int(key[0])
	return string(key[1 : 1+n]), string(key[1+n:]), nil
}
