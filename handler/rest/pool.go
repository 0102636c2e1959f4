package rest

import (
	"fmt"
	"net/http"

	"synthpool/core"
	"synthpool/handler/render"
	"synthpool/handler/views"
)

func poolHandler(snapshots core.ISnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool := snapshots.Load().Pool
		if pool == nil {
			render.Error(w, fmt.Errorf("%w: pool not loaded", core.ErrStaleData))
			return
		}

		render.JSON(w, views.PoolView(pool))
	}
}

func accountHandler(snapshots core.ISnapshotStore, positions core.IPositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.AccountView(snapshots.Load(), positions))
	}
}
