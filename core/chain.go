package core

import (
	"context"
	"math/big"
)

// ChainObject object content read from chain
type ChainObject struct {
	ID     string                 `json:"object_id"`
	Type   string                 `json:"type"`
	Fields map[string]interface{} `json:"fields"`
}

// DynamicField entry of an on-chain table
type DynamicField struct {
	ObjectID string      `json:"object_id"`
	NameType string      `json:"name_type"`
	Name     interface{} `json:"name"`
}

// CoinObject spendable coin object
type CoinObject struct {
	ObjectID string   `json:"object_id"`
	Balance  *big.Int `json:"balance"`
}

// MoveCall move call description
type MoveCall struct {
	// {package}::{module}::{function}
	Target        string        `json:"target"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

// TxReceipt result of executing a transaction
type TxReceipt struct {
	Digest string `json:"digest"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Succeeded effects status is success
func (r *TxReceipt) Succeeded() bool {
	return r != nil && r.Status == "success"
}

// IChainClient chain rpc client
type IChainClient interface {
	GetBalance(ctx context.Context, owner, coinType string) (*big.Int, error)
	GetCoins(ctx context.Context, owner, coinType string) ([]*CoinObject, error)
	GetObject(ctx context.Context, id string) (*ChainObject, error)
	GetDynamicFields(ctx context.Context, parentID string) ([]*DynamicField, error)
	// MoveCall build an unsigned transaction, returns base64 tx bytes
	MoveCall(ctx context.Context, signer string, call *MoveCall, gasBudget int64) (string, error)
	ExecuteTransaction(ctx context.Context, txBytes string, signatures []string) (*TxReceipt, error)
}
