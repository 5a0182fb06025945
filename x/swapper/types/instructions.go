package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
)

// Instruction is an action emitted by the swapper and run by the keeper's
// dispatcher after the emitting call returns. The set of implementations is
// closed: SwapOperationsInstruction, MsgTransferResult and BankSendInstruction.
type Instruction interface {
	isInstruction()
}

// SwapOperationsInstruction swaps CoinIn, held by the module account, through
// every operation in a single multi-hop swap.
type SwapOperationsInstruction struct {
	Operations     []sharedkeeper.SwapOperation `json:"operations"`
	CoinIn         sdk.Coin                     `json:"coin_in"`
	MinimumReceive math.Int                     `json:"minimum_receive"`
}

// BankSendInstruction transfers Amount between two accounts.
type BankSendInstruction struct {
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	Amount      sdk.Coins `json:"amount"`
}

func (SwapOperationsInstruction) isInstruction() {}
func (MsgTransferResult) isInstruction()         {}
func (BankSendInstruction) isInstruction()       {}
