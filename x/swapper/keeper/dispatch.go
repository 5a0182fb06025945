package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/mars-protocol/mars-common/x/swapper/types"
)

// dispatch runs instructions in order, including any instructions they emit,
// and returns the total amount moved by bank sends. The caller owns the
// cache context: a failure leaves earlier instructions to be discarded.
func (k Keeper) dispatch(ctx context.Context, instrs []types.Instruction) (sdk.Coins, error) {
	sent := sdk.NewCoins()
	for i, instr := range instrs {
		switch instr := instr.(type) {
		case types.SwapOperationsInstruction:
			if _, err := k.router.ExecuteSwapOperations(ctx, k.moduleAddress, instr.Operations, instr.CoinIn, instr.MinimumReceive); err != nil {
				return nil, fmt.Errorf("instruction %d: swap operations: %w", i, err)
			}

		case types.MsgTransferResult:
			next, err := k.TransferResult(ctx, instr)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			coins, err := k.dispatch(ctx, next)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			sent = sent.Add(coins...)

		case types.BankSendInstruction:
			from, err := sdk.AccAddressFromBech32(instr.FromAddress)
			if err != nil {
				return nil, types.ErrInvalidInstruction.Wrapf("instruction %d: invalid from address: %s", i, err)
			}
			to, err := sdk.AccAddressFromBech32(instr.ToAddress)
			if err != nil {
				return nil, types.ErrInvalidInstruction.Wrapf("instruction %d: invalid to address: %s", i, err)
			}
			if err := k.bankKeeper.SendCoins(ctx, from, to, instr.Amount); err != nil {
				return nil, fmt.Errorf("instruction %d: bank send: %w", i, err)
			}
			sent = sent.Add(instr.Amount...)

		default:
			return nil, types.ErrInvalidInstruction.Wrapf("instruction %d: unknown type %T", i, instr)
		}
	}
	return sent, nil
}
