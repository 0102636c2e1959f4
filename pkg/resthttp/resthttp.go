package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultTimeout request timeout of the shared client
	DefaultTimeout = 10 * time.Second
)

var (
	runOnce     sync.Once
	restyClient *resty.Client
)

// New new json client
func New(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(timeout)
}

// Client shared resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = New(DefaultTimeout)
	})

	return restyClient
}

// Request new resty request on the shared client
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// StatusError non 2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// ParseResponse decode a 2xx json body into obj
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return &StatusError{StatusCode: r.StatusCode(), Body: string(r.Body())}
	}

	if obj == nil {
		return nil
	}

	return json.Unmarshal(r.Body(), obj)
}
