package codes

import (
	"synthpool/core"

	"github.com/twitchtv/twirp"
)

// Twirp twirp code of an error code
func Twirp(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrInvalidInput, core.ErrInvalidAmount, core.ErrUnknownAction, core.ErrInsufficientCollateral:
		return twirp.InvalidArgument
	case core.ErrInsufficientBalance:
		return twirp.FailedPrecondition
	case core.ErrChainRejection:
		return twirp.Aborted
	case core.ErrActionInFlight:
		return twirp.AlreadyExists
	case core.ErrStaleData:
		return twirp.Unavailable
	case core.ErrSymbolNotFound:
		return twirp.NotFound
	default:
		return twirp.Internal
	}
}

// HTTPStatus http status of err
func HTTPStatus(err error) int {
	return twirp.ServerHTTPStatusFromErrorCode(Twirp(core.CodeOf(err)))
}
