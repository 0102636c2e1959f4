package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000

	// ErrInvalidInput non-numeric or out of range user entry
	ErrInvalidInput ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientBalance spendable coins below the requested amount
	ErrInsufficientBalance ErrorCode = 100102
	// ErrChainRejection wallet or rpc rejected the transaction
	ErrChainRejection ErrorCode = 100103
	// ErrStaleData pool or oracle snapshot not loaded yet
	ErrStaleData ErrorCode = 100104
	// ErrActionInFlight same action is being submitted
	ErrActionInFlight ErrorCode = 100105
	// ErrSymbolNotFound ticker symbol missing upstream
	ErrSymbolNotFound ErrorCode = 100106
	// ErrUnknownAction unknown action
	ErrUnknownAction ErrorCode = 100107
	// ErrInsufficientCollateral collateral below the mint requirement
	ErrInsufficientCollateral ErrorCode = 100108
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                "unknown error",
	ErrInvalidInput:           "invalid input",
	ErrInvalidAmount:          "invalid amount",
	ErrInsufficientBalance:    "insufficient balance",
	ErrChainRejection:         "transaction rejected",
	ErrStaleData:              "data not loaded",
	ErrActionInFlight:         "action already in progress",
	ErrSymbolNotFound:         "symbol not found",
	ErrUnknownAction:          "unknown action",
	ErrInsufficientCollateral: "insufficient collateral",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// CodedError attach a code to an error, keeping its message verbatim
type CodedError struct {
	Code ErrorCode
	Err  error
}

// WrapError wrap err with code, nil if err is nil
func WrapError(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}

	return &CodedError{Code: code, Err: err}
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// Is match by code
func (e *CodedError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// CodeOf extract the code of err, ErrUnknown if none
func CodeOf(err error) ErrorCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}

	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
