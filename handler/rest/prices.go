package rest

import (
	"net/http"
	"strings"
	"time"

	"synthpool/core"
	"synthpool/handler/param"
	"synthpool/handler/render"

	"github.com/fox-one/pkg/logger"
)

const (
	defaultHistory = 24 * time.Hour
	maxTicks       = 24 * 90
)

func pricesHandler(defaultSymbol string, ticks core.IPriceTickStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string    `json:"symbol"`
			Since  time.Time `json:"since"`
			Limit  int       `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		filter := core.PriceTickFilter{
			Symbol: strings.ToUpper(params.Symbol),
			Since:  params.Since,
			Limit:  params.Limit,
		}

		if filter.Symbol == "" {
			filter.Symbol = defaultSymbol
		}

		if filter.Since.IsZero() {
			filter.Since = time.Now().Add(-defaultHistory)
		}

		if filter.Limit <= 0 || filter.Limit > maxTicks {
			filter.Limit = maxTicks
		}

		list, err := ticks.List(r.Context(), filter)
		if err != nil {
			logger.FromContext(r.Context()).WithError(err).Errorln("ticks.List")
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}

func latestPriceHandler(defaultSymbol string, ticks core.IPriceTickStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(r.URL.Query().Get("symbol"))
		if symbol == "" {
			symbol = defaultSymbol
		}

		tick, err := ticks.Latest(r.Context(), symbol)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, tick)
	}
}
