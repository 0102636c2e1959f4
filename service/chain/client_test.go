package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"synthpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(params []json.RawMessage) (interface{}, *RPCError)

// newMockRPC serves json-rpc methods from handlers
func newMockRPC(t *testing.T, handlers map[string]handlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		h, ok := handlers[req.Method]
		if !ok {
			resp["error"] = RPCError{Code: -32601, Message: "method not found"}
		} else if result, rpcErr := h(req.Params); rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func str(t *testing.T, raw json.RawMessage) string {
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

func TestGetBalance(t *testing.T) {
	srv := newMockRPC(t, map[string]handlerFunc{
		"suix_getBalance": func(params []json.RawMessage) (interface{}, *RPCError) {
			assert.Equal(t, "0xowner", str(t, params[0]))
			assert.Equal(t, "0x2::sui::SUI", str(t, params[1]))
			return map[string]interface{}{"totalBalance": "30000000000"}, nil
		},
	})

	c := New(srv.URL, time.Second)
	balance, err := c.GetBalance(context.Background(), "0xowner", "0x2::sui::SUI")
	require.NoError(t, err)
	assert.Equal(t, "30000000000", balance.String())
}

func TestGetCoinsPaginates(t *testing.T) {
	calls := 0
	srv := newMockRPC(t, map[string]handlerFunc{
		"suix_getCoins": func(params []json.RawMessage) (interface{}, *RPCError) {
			calls++
			if string(params[2]) == "null" {
				return map[string]interface{}{
					"data":        []map[string]string{{"coinObjectId": "0xa", "balance": "5"}},
					"nextCursor":  "0xa",
					"hasNextPage": true,
				}, nil
			}

			assert.Equal(t, "0xa", str(t, params[2]))
			return map[string]interface{}{
				"data":        []map[string]string{{"coinObjectId": "0xb", "balance": "7"}},
				"nextCursor":  nil,
				"hasNextPage": false,
			}, nil
		},
	})

	coins, err := New(srv.URL, time.Second).GetCoins(context.Background(), "0xowner", "0x2::sui::SUI")
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "0xb", coins[1].ObjectID)
	assert.Equal(t, "7", coins[1].Balance.String())
}

func TestGetObject(t *testing.T) {
	srv := newMockRPC(t, map[string]handlerFunc{
		"sui_getObject": func(params []json.RawMessage) (interface{}, *RPCError) {
			if str(t, params[0]) == "0xmissing" {
				return map[string]interface{}{
					"error": map[string]string{"code": "notExists", "object_id": "0xmissing"},
				}, nil
			}

			return map[string]interface{}{
				"data": map[string]interface{}{
					"objectId": "0xoracle",
					"type":     "0xpkg::oracle::PriceFeed",
					"content": map[string]interface{}{
						"dataType": "moveObject",
						"fields":   map[string]interface{}{"price": "425678900"},
					},
				},
			}, nil
		},
	})

	c := New(srv.URL, time.Second)
	obj, err := c.GetObject(context.Background(), "0xoracle")
	require.NoError(t, err)
	assert.Equal(t, "0xpkg::oracle::PriceFeed", obj.Type)
	assert.Equal(t, "425678900", obj.Fields["price"])

	_, err = c.GetObject(context.Background(), "0xmissing")
	assert.Error(t, err)
}

func TestGetDynamicFields(t *testing.T) {
	srv := newMockRPC(t, map[string]handlerFunc{
		"suix_getDynamicFields": func(params []json.RawMessage) (interface{}, *RPCError) {
			return map[string]interface{}{
				"data": []map[string]interface{}{
					{"name": map[string]string{"type": "address", "value": "0xowner"}, "objectId": "0xfield"},
				},
				"hasNextPage": false,
			}, nil
		},
	})

	fields, err := New(srv.URL, time.Second).GetDynamicFields(context.Background(), "0xtable")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "0xowner", fields[0].Name)
	assert.Equal(t, "address", fields[0].NameType)
	assert.Equal(t, "0xfield", fields[0].ObjectID)
}

func TestMoveCall(t *testing.T) {
	srv := newMockRPC(t, map[string]handlerFunc{
		"unsafe_moveCall": func(params []json.RawMessage) (interface{}, *RPCError) {
			require.Len(t, params, 8)
			assert.Equal(t, "0xowner", str(t, params[0]))
			assert.Equal(t, "0xpkg", str(t, params[1]))
			assert.Equal(t, "vault", str(t, params[2]))
			assert.Equal(t, "mint", str(t, params[3]))
			assert.Equal(t, "null", string(params[6]))
			assert.Equal(t, "10000000", str(t, params[7]))
			return map[string]string{"txBytes": "AAEC"}, nil
		},
	})

	c := New(srv.URL, time.Second)
	txBytes, err := c.MoveCall(context.Background(), "0xowner", &core.MoveCall{
		Target:    "0xpkg::vault::mint",
		Arguments: []interface{}{"0xvault", "1000"},
	}, 10000000)
	require.NoError(t, err)
	assert.Equal(t, "AAEC", txBytes)

	_, err = c.MoveCall(context.Background(), "0xowner", &core.MoveCall{Target: "bad"}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestExecuteTransaction(t *testing.T) {
	srv := newMockRPC(t, map[string]handlerFunc{
		"sui_executeTransactionBlock": func(params []json.RawMessage) (interface{}, *RPCError) {
			if str(t, params[0]) == "bad" {
				return nil, &RPCError{Code: -32002, Message: "Invalid user signature"}
			}

			return map[string]interface{}{
				"digest": "Digest1",
				"effects": map[string]interface{}{
					"status": map[string]string{"status": "failure", "error": "MoveAbort(vault, 3)"},
				},
			}, nil
		},
	})

	c := New(srv.URL, time.Second)
	receipt, err := c.ExecuteTransaction(context.Background(), "AAEC", []string{"sig"})
	require.NoError(t, err)
	assert.Equal(t, "Digest1", receipt.Digest)
	assert.False(t, receipt.Succeeded())
	assert.Equal(t, "MoveAbort(vault, 3)", receipt.Error)

	_, err = c.ExecuteTransaction(context.Background(), "bad", []string{"sig"})
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "Invalid user signature", rpcErr.Message)
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, time.Second).GetBalance(context.Background(), "0xowner", "0x2::sui::SUI")
	assert.Error(t, err)
}
