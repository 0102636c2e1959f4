package hc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"synthpool/core"
	"synthpool/store/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	snapshots := snapshot.New()
	h := Handle("1.0.0", snapshots)

	get := func() map[string]interface{} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	body := get()
	assert.Equal(t, "1.0.0", body["version"])
	assert.NotContains(t, body, "pool_updated_at")

	snapshots.PublishPool(&core.PoolSnapshot{UpdatedAt: time.Now()})
	assert.Contains(t, get(), "pool_updated_at")
}
