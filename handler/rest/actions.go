package rest

import (
	"net/http"

	"synthpool/core"
	"synthpool/handler/param"
	"synthpool/handler/render"

	"github.com/go-chi/chi"
)

func prepareHandler(wallet core.IWalletSession, actions core.IActionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.ActionRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		req.Action = core.Action(chi.URLParam(r, "action"))
		if req.Owner == "" {
			req.Owner = wallet.State().Account
		}

		tx, err := actions.Prepare(r.Context(), &req)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, tx)
	}
}

func submitHandler(wallet core.IWalletSession, actions core.IActionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.SubmitRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		req.Action = core.Action(chi.URLParam(r, "action"))
		if req.Owner == "" {
			req.Owner = wallet.State().Account
		}

		receipt, err := actions.Submit(r.Context(), &req)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, receipt)
	}
}
