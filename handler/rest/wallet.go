package rest

import (
	"net/http"

	"synthpool/core"
	"synthpool/handler/param"
	"synthpool/handler/render"
)

func walletHandler(wallet core.IWalletSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, wallet.State())
	}
}

// connectHandler the browser wallet adapter reports {account, connected, chains}
func connectHandler(wallet core.IWalletSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body core.WalletState
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !body.Connected {
			wallet.Disconnect()
			render.JSON(w, wallet.State())
			return
		}

		if err := wallet.Connect(body.Account, body.Chains); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, wallet.State())
	}
}

func disconnectHandler(wallet core.IWalletSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallet.Disconnect()
		render.JSON(w, wallet.State())
	}
}
