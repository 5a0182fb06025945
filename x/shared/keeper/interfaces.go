// Package keeper provides shared keeper interfaces for cross-module communication.
// Versioned interfaces keep the contract between modules stable.
package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// =============================================================================
// Liquidity Keeper Interfaces (Versioned)
// =============================================================================

// LiquidityKeeperV1 is the read-only view of the liquidity pools used by the
// price oracle and the swap router.
type LiquidityKeeperV1 interface {
	// SimulateSwap returns the amount of askDenom received for offer in a single pool.
	SimulateSwap(ctx context.Context, poolID uint64, offer sdk.Coin, askDenom string) (sdkmath.Int, error)

	// SimulateSwapOperations replays ops in order, feeding the output of each
	// operation into the next one.
	SimulateSwapOperations(ctx context.Context, ops []SwapOperation, amount sdkmath.Int) (sdkmath.Int, error)

	// PoolDenoms returns the denoms held by a pool.
	PoolDenoms(ctx context.Context, poolID uint64) ([]string, error)

	// TwapSnapshotTimes returns the unix times of the snapshots recorded for a
	// pool within [from, to], ascending.
	TwapSnapshotTimes(ctx context.Context, poolID uint64, from, to int64) ([]int64, error)

	// ArithmeticTwapToNow returns the time-weighted price of baseDenom in
	// quoteDenom between the snapshot taken at start and the current block.
	ArithmeticTwapToNow(ctx context.Context, poolID uint64, baseDenom, quoteDenom string, start int64) (sdkmath.LegacyDec, error)
}

// SwapRouterV1 executes multi-hop swaps on behalf of an account.
type SwapRouterV1 interface {
	// ExecuteSwapOperations swaps coinIn owned by sender through ops and credits
	// the output to sender. It fails when the output is below minOut.
	ExecuteSwapOperations(ctx context.Context, sender sdk.AccAddress, ops []SwapOperation, coinIn sdk.Coin, minOut sdkmath.Int) (sdkmath.Int, error)
}

// SwapOperation is one concrete hop through a pool.
type SwapOperation struct {
	PoolID   uint64 `json:"pool_id"`
	DenomIn  string `json:"denom_in"`
	DenomOut string `json:"denom_out"`
}

// String returns "<pool>:<denom_in>-><denom_out>".
func (op SwapOperation) String() string {
	return fmt.Sprintf("%d:%s->%s", op.PoolID, op.DenomIn, op.DenomOut)
}

// ValidateSwapOperations checks that ops form a continuous chain starting at denomIn.
func ValidateSwapOperations(ops []SwapOperation, denomIn string) error {
	if len(ops) == 0 {
		return fmt.Errorf("empty swap operations")
	}
	expected := denomIn
	for i, op := range ops {
		if op.DenomIn != expected {
			return fmt.Errorf("operation %d: denom in %s does not match %s", i, op.DenomIn, expected)
		}
		if op.DenomIn == op.DenomOut {
			return fmt.Errorf("operation %d: denom in and out are both %s", i, op.DenomIn)
		}
		expected = op.DenomOut
	}
	return nil
}
