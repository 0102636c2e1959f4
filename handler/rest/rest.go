package rest

import (
	"net/http"

	"synthpool/core"
	"synthpool/handler/render"

	"github.com/go-chi/chi"
)

// Deps services behind the rest api
type Deps struct {
	Symbol    string
	Snapshots core.ISnapshotStore
	Wallet    core.IWalletSession
	Positions core.IPositionService
	Actions   core.IActionService
	Ticks     core.IPriceTickStore
}

// Handle handle rest api request
func Handle(deps Deps) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, "not found")
	})

	router.Get("/pool", poolHandler(deps.Snapshots))
	router.Get("/account", accountHandler(deps.Snapshots, deps.Positions))

	router.Route("/wallet", func(r chi.Router) {
		r.Get("/", walletHandler(deps.Wallet))
		r.Post("/", connectHandler(deps.Wallet))
		r.Delete("/", disconnectHandler(deps.Wallet))
	})

	router.Route("/quotes", func(r chi.Router) {
		r.Post("/mint", mintQuoteHandler(deps.Snapshots, deps.Positions))
		r.Post("/borrow", borrowQuoteHandler(deps.Snapshots, deps.Positions))
	})

	router.Get("/prices", pricesHandler(deps.Symbol, deps.Ticks))
	router.Get("/prices/latest", latestPriceHandler(deps.Symbol, deps.Ticks))

	router.Route("/actions/{action}", func(r chi.Router) {
		r.Post("/", prepareHandler(deps.Wallet, deps.Actions))
		r.Post("/submit", submitHandler(deps.Wallet, deps.Actions))
	})

	return router
}
