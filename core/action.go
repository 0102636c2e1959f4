package core

import (
	"context"
	"fmt"
)

// Action user write action
type Action string

const (
	// ActionMint mint synthetic btc against collateral
	ActionMint Action = "mint"
	// ActionBurn burn synthetic btc, partially or in full
	ActionBurn Action = "burn"
	// ActionAddCollateral top up collateral of a mint position
	ActionAddCollateral Action = "add_collateral"
	// ActionSupply supply usdc to the lending pool
	ActionSupply Action = "supply"
	// ActionWithdraw withdraw from the lending pool
	ActionWithdraw Action = "withdraw"
	// ActionBorrow open a leveraged borrow position
	ActionBorrow Action = "borrow"
	// ActionRepay repay a borrow position
	ActionRepay Action = "repay"
	// ActionFaucet claim test tokens
	ActionFaucet Action = "faucet"
)

// Actions all actions
var Actions = []Action{
	ActionMint,
	ActionBurn,
	ActionAddCollateral,
	ActionSupply,
	ActionWithdraw,
	ActionBorrow,
	ActionRepay,
	ActionFaucet,
}

// ParseAction parse action name
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ActionRequest write action input, amounts as entered by the user
type ActionRequest struct {
	Owner          string `json:"owner" valid:"required"`
	Action         Action `json:"action"`
	CollateralType string `json:"collateral_type"`
	// amount of the coin the action spends or receives
	Amount string `json:"amount"`
	// collateral posted by mint and borrow
	CollateralAmount string `json:"collateral_amount"`
	Leverage         string `json:"leverage"`
}

// PreparedTx unsigned transaction waiting for the wallet signature
type PreparedTx struct {
	Owner   string    `json:"owner"`
	Action  Action    `json:"action"`
	Call    *MoveCall `json:"call"`
	TxBytes string    `json:"tx_bytes"`
}

// SubmitRequest signed transaction from the wallet
type SubmitRequest struct {
	Owner      string   `json:"owner" valid:"required"`
	Action     Action   `json:"action"`
	TxBytes    string   `json:"tx_bytes" valid:"required"`
	Signatures []string `json:"signatures"`
}

// IActionService build and submit write actions
type IActionService interface {
	Prepare(ctx context.Context, req *ActionRequest) (*PreparedTx, error)
	Submit(ctx context.Context, req *SubmitRequest) (*TxReceipt, error)
}
