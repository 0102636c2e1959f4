package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, ResultOK, Result(nil))
	assert.Equal(t, ResultError, Result(errors.New("boom")))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(PollTotal.WithLabelValues("pool", ResultError))
	PollTotal.WithLabelValues("pool", Result(errors.New("rpc down"))).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PollTotal.WithLabelValues("pool", ResultError)))
}

func TestMiddleware(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration, "synthpool_http_request_duration_seconds"))
}
