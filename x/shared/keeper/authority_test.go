package keeper_test

import (
	"testing"

	errorsmod "cosmossdk.io/errors"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/mars-protocol/mars-common/x/shared/keeper"
)

var errTestUnauthorized = errorsmod.Register("sharedtest", 2, "unauthorized")

func TestValidateAuthority(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		wantErr  bool
	}{
		{
			name:     "valid authority match",
			expected: "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn",
			actual:   "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn",
		},
		{
			name:     "authority mismatch",
			expected: "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn",
			actual:   "cosmos1fl48vsnmsdzcv85q5d2q4z5ajdha8yu34mf0eh",
			wantErr:  true,
		},
		{
			name:     "empty actual authority",
			expected: "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn",
			actual:   "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := keeper.ValidateAuthority(tt.expected, tt.actual)
			if tt.wantErr {
				require.ErrorIs(t, err, govtypes.ErrInvalidSigner)
				require.Contains(t, err.Error(), tt.expected)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateOwner(t *testing.T) {
	const owner = "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn"

	require.NoError(t, keeper.ValidateOwner(errTestUnauthorized, owner, owner, "set route"))

	err := keeper.ValidateOwner(errTestUnauthorized, owner, "intruder", "set route")
	require.True(t, errorsmod.IsOf(err, errTestUnauthorized))
	require.Contains(t, err.Error(), "intruder is not authorized to set route")

	// nobody owns a module with an empty owner, not even an empty sender
	err = keeper.ValidateOwner(errTestUnauthorized, "", "", "set route")
	require.True(t, errorsmod.IsOf(err, errTestUnauthorized))
}
