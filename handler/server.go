package handler

import (
	"net/http"

	"synthpool/core"
	"synthpool/handler/render"
	"synthpool/handler/rest"
	"synthpool/pkg/metrics"

	"github.com/go-chi/chi"
)

// Server server
type Server struct {
	cfg       *core.Config
	snapshots core.ISnapshotStore
	wallet    core.IWalletSession
	positions core.IPositionService
	actions   core.IActionService
	ticks     core.IPriceTickStore
}

// New new server function
func New(
	cfg *core.Config,
	snapshots core.ISnapshotStore,
	wallet core.IWalletSession,
	positions core.IPositionService,
	actions core.IActionService,
	ticks core.IPriceTickStore,
) Server {
	return Server{
		cfg:       cfg,
		snapshots: snapshots,
		wallet:    wallet,
		positions: positions,
		actions:   actions,
		ticks:     ticks,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, "not found")
	})

	r.Mount("/", rest.Handle(rest.Deps{
		Symbol:    s.cfg.PriceHistory.Symbol,
		Snapshots: s.snapshots,
		Wallet:    s.wallet,
		Positions: s.positions,
		Actions:   s.actions,
		Ticks:     s.ticks,
	}))

	return r
}
