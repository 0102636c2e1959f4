package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"synthpool/core"
	"synthpool/pkg/number"
	"synthpool/pkg/resthttp"
)

type client struct {
	rpc
}

// New new sui json-rpc client
func New(endpoint string, timeout time.Duration) core.IChainClient {
	return &client{
		rpc: rpc{
			endpoint: endpoint,
			client:   resthttp.New(timeout),
		},
	}
}

func (c *client) GetBalance(ctx context.Context, owner, coinType string) (*big.Int, error) {
	var result struct {
		TotalBalance string `json:"totalBalance"`
	}

	if err := c.call(ctx, &result, "suix_getBalance", owner, coinType); err != nil {
		return nil, err
	}

	return number.ParseRaw(result.TotalBalance)
}

func (c *client) GetCoins(ctx context.Context, owner, coinType string) ([]*core.CoinObject, error) {
	var coins []*core.CoinObject

	err := c.paginate(ctx, "suix_getCoins", []interface{}{owner, coinType}, func(data json.RawMessage) error {
		var items []struct {
			CoinObjectID string `json:"coinObjectId"`
			Balance      string `json:"balance"`
		}

		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}

		for _, item := range items {
			balance, err := number.ParseRaw(item.Balance)
			if err != nil {
				return err
			}

			coins = append(coins, &core.CoinObject{
				ObjectID: item.CoinObjectID,
				Balance:  balance,
			})
		}

		return nil
	})

	return coins, err
}

func (c *client) GetObject(ctx context.Context, id string) (*core.ChainObject, error) {
	var result struct {
		Data *struct {
			ObjectID string `json:"objectId"`
			Type     string `json:"type"`
			Content  *struct {
				Type   string                 `json:"type"`
				Fields map[string]interface{} `json:"fields"`
			} `json:"content"`
		} `json:"data"`
		Error *struct {
			Code     string `json:"code"`
			ObjectID string `json:"object_id"`
		} `json:"error"`
	}

	options := map[string]bool{
		"showContent": true,
		"showType":    true,
	}

	if err := c.call(ctx, &result, "sui_getObject", id, options); err != nil {
		return nil, err
	}

	if result.Error != nil {
		return nil, fmt.Errorf("get object %s: %s", id, result.Error.Code)
	}

	if result.Data == nil || result.Data.Content == nil {
		return nil, fmt.Errorf("get object %s: no content", id)
	}

	typ := result.Data.Type
	if typ == "" {
		typ = result.Data.Content.Type
	}

	return &core.ChainObject{
		ID:     result.Data.ObjectID,
		Type:   typ,
		Fields: result.Data.Content.Fields,
	}, nil
}

func (c *client) GetDynamicFields(ctx context.Context, parentID string) ([]*core.DynamicField, error) {
	var fields []*core.DynamicField

	err := c.paginate(ctx, "suix_getDynamicFields", []interface{}{parentID}, func(data json.RawMessage) error {
		var items []struct {
			Name struct {
				Type  string      `json:"type"`
				Value interface{} `json:"value"`
			} `json:"name"`
			ObjectID string `json:"objectId"`
		}

		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}

		for _, item := range items {
			fields = append(fields, &core.DynamicField{
				ObjectID: item.ObjectID,
				NameType: item.Name.Type,
				Name:     item.Name.Value,
			})
		}

		return nil
	})

	return fields, err
}

func (c *client) MoveCall(ctx context.Context, signer string, call *core.MoveCall, gasBudget int64) (string, error) {
	parts := strings.Split(call.Target, "::")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: move call target %q", core.ErrInvalidInput, call.Target)
	}

	typeArgs := call.TypeArguments
	if typeArgs == nil {
		typeArgs = []string{}
	}

	args := call.Arguments
	if args == nil {
		args = []interface{}{}
	}

	var result struct {
		TxBytes string `json:"txBytes"`
	}

	err := c.call(ctx, &result, "unsafe_moveCall",
		signer,
		parts[0],
		parts[1],
		parts[2],
		typeArgs,
		args,
		nil,
		strconv.FormatInt(gasBudget, 10),
	)
	if err != nil {
		return "", err
	}

	return result.TxBytes, nil
}

func (c *client) ExecuteTransaction(ctx context.Context, txBytes string, signatures []string) (*core.TxReceipt, error) {
	var result struct {
		Digest  string `json:"digest"`
		Effects *struct {
			Status struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"status"`
		} `json:"effects"`
	}

	options := map[string]bool{
		"showEffects": true,
	}

	if err := c.call(ctx, &result, "sui_executeTransactionBlock", txBytes, signatures, options, "WaitForLocalExecution"); err != nil {
		return nil, err
	}

	receipt := &core.TxReceipt{Digest: result.Digest}
	if result.Effects != nil {
		receipt.Status = result.Effects.Status.Status
		receipt.Error = result.Effects.Status.Error
	}

	return receipt, nil
}
