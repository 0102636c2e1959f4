package rest

import (
	"net/http"

	"synthpool/core"
	"synthpool/handler/param"
	"synthpool/handler/render"

	"github.com/shopspring/decimal"
)

func mintQuoteHandler(snapshots core.ISnapshotStore, positions core.IPositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.MintQuoteRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		snapshot := snapshots.Load()

		// max mintable is capped by the connected wallet unless the client sent a balance
		if !req.WalletBalance.Valid && snapshot.Account.Owner != "" && req.CollateralType.Valid() {
			req.WalletBalance = decimal.NewNullDecimal(snapshot.Account.Balance(req.CollateralType.String()).Decimal())
		}

		quote, err := positions.QuoteMint(snapshot.Pool, &req)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, quote)
	}
}

func borrowQuoteHandler(snapshots core.ISnapshotStore, positions core.IPositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.BorrowQuoteRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		quote, err := positions.QuoteBorrow(snapshots.Load().Pool, &req)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, quote)
	}
}
