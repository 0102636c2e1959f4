package hc

import (
	"net/http"
	"time"

	"synthpool/core"
	"synthpool/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request
func Handle(ver string, snapshots core.ISnapshotStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, snapshots))
	return r
}

func handle(version string, snapshots core.ISnapshotStore) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)

		h := render.H{
			"uptime":  uptime.String(),
			"version": version,
		}

		if pool := snapshots.Load().Pool; pool != nil {
			h["pool_updated_at"] = pool.UpdatedAt
		}

		render.JSON(w, h)
	}
}
