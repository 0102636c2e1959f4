package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"synthpool/core"
	"synthpool/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

// H json object
type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render.JSON")
	}
}

// Error render err as {"code", "msg"}, never leaking internals of unknown errors
func Error(w http.ResponseWriter, err error) {
	code := core.CodeOf(err)
	status := codes.HTTPStatus(err)

	msg := err.Error()
	if code == core.ErrUnknown {
		msg = code.Error()
	}

	var twerr twirp.Error
	if errors.As(err, &twerr) {
		status = twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
		msg = twerr.Msg()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(H{"code": int(code), "msg": msg}); err != nil {
		logrus.WithError(err).Errorln("render.Error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, core.WrapError(core.ErrInvalidInput, err))
}

// NotFound not found error
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, twirp.NotFoundError(msg))
}
