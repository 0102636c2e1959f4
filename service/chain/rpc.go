package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"synthpool/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const (
	pageLimit = 50
	maxPages  = 100
)

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCError json-rpc error object
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error node message verbatim
func (e *RPCError) Error() string {
	return e.Message
}

type rpc struct {
	endpoint string
	client   *resty.Client
	seq      uint64
}

func (c *rpc) call(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.seq, 1),
		Method:  method,
		Params:  params,
	}

	resp, err := c.client.R().SetContext(ctx).SetBody(req).Post(c.endpoint)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Debugln("rpc", method)
		return err
	}

	var body rpcResponse
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return err
	}

	if body.Error != nil {
		return body.Error
	}

	if result == nil {
		return nil
	}

	return json.Unmarshal(body.Result, result)
}

type page struct {
	Data        json.RawMessage `json:"data"`
	NextCursor  *string         `json:"nextCursor"`
	HasNextPage bool            `json:"hasNextPage"`
}

// paginate call method until the last page, params are followed by cursor and limit
func (c *rpc) paginate(ctx context.Context, method string, params []interface{}, onPage func(data json.RawMessage) error) error {
	var cursor *string

	for i := 0; i < maxPages; i++ {
		args := append(append([]interface{}{}, params...), cursor, pageLimit)

		var p page
		if err := c.call(ctx, &p, method, args...); err != nil {
			return err
		}

		if err := onPage(p.Data); err != nil {
			return err
		}

		if !p.HasNextPage || p.NextCursor == nil {
			return nil
		}

		cursor = p.NextCursor
	}

	return fmt.Errorf("%s: more than %d pages", method, maxPages)
}
