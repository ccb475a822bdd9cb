package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	// engine
	NoActiveMission     ErrorCode = "NO_ACTIVE_MISSION"
	NotOwnerOrNotStaked ErrorCode = "NOT_OWNER_OR_NOT_STAKED"
	AlreadyStaked       ErrorCode = "ALREADY_STAKED"
	LedgerNotLinked     ErrorCode = "LEDGER_NOT_LINKED"
	// token ledger
	ArrayLengthMismatch   ErrorCode = "ARRAY_LENGTH_MISMATCH"
	SupplyAlreadyClaimed  ErrorCode = "SUPPLY_ALREADY_CLAIMED"
	InsufficientBalance   ErrorCode = "INSUFFICIENT_BALANCE"
	InsufficientAllowance ErrorCode = "INSUFFICIENT_ALLOWANCE"
	ZeroAddress           ErrorCode = "ZERO_ADDRESS"
	// collection
	TokenNotFound              ErrorCode = "TOKEN_NOT_FOUND"
	NotOwnerNorApproved        ErrorCode = "NOT_OWNER_NOR_APPROVED"
	TransferFromIncorrectOwner ErrorCode = "TRANSFER_FROM_INCORRECT_OWNER"
	SaleNotActive              ErrorCode = "SALE_NOT_ACTIVE"
	PresaleNotActive           ErrorCode = "PRESALE_NOT_ACTIVE"
	TooManyPerWallet           ErrorCode = "TOO_MANY_PER_WALLET"
	NotEnoughTokensLeft        ErrorCode = "NOT_ENOUGH_TOKENS_LEFT"
	InvalidProof               ErrorCode = "INVALID_PROOF"
	// shared
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	BadRequest           ErrorCode = "BAD_REQUEST"
	NotFound             ErrorCode = "NOT_FOUND"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

func (c ErrorCode) String() string {
	return string(c)
}

// statusCodes maps every failure to the HTTP status the api reports it with.
var statusCodes = map[ErrorCode]int{
	NoActiveMission:            http.StatusConflict,
	NotOwnerOrNotStaked:        http.StatusForbidden,
	AlreadyStaked:              http.StatusConflict,
	LedgerNotLinked:            http.StatusConflict,
	ArrayLengthMismatch:        http.StatusBadRequest,
	SupplyAlreadyClaimed:       http.StatusConflict,
	InsufficientBalance:        http.StatusConflict,
	InsufficientAllowance:      http.StatusConflict,
	ZeroAddress:                http.StatusBadRequest,
	TokenNotFound:              http.StatusNotFound,
	NotOwnerNorApproved:        http.StatusForbidden,
	TransferFromIncorrectOwner: http.StatusConflict,
	SaleNotActive:              http.StatusConflict,
	PresaleNotActive:           http.StatusConflict,
	TooManyPerWallet:           http.StatusConflict,
	NotEnoughTokensLeft:        http.StatusConflict,
	InvalidProof:               http.StatusForbidden,
	Unauthorized:               http.StatusForbidden,
	BadRequest:                 http.StatusBadRequest,
	NotFound:                   http.StatusNotFound,
	InternalServiceError:       http.StatusInternalServerError,
}

// Error is a named failure aborting an operation. Two errors match with
// errors.Is when their codes are equal, so callers compare against the
// Err* values below regardless of the message.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}

func NewError(errorCode ErrorCode, err error) *Error {
	statusCode, ok := statusCodes[errorCode]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(errorCode ErrorCode, msg string) *Error {
	return NewError(errorCode, errors.New(msg))
}

func Errorf(errorCode ErrorCode, format string, args ...any) *Error {
	return NewError(errorCode, fmt.Errorf(format, args...))
}

// NewInternalServiceError wraps an unexpected failure, keeping the original
// error reachable through errors.Unwrap.
func NewInternalServiceError(err error) *Error {
	return NewError(InternalServiceError, err)
}

var (
	ErrNoActiveMission            = NewErrorWithMsg(NoActiveMission, "no mission has been started")
	ErrNotOwnerOrNotStaked        = NewErrorWithMsg(NotOwnerOrNotStaked, "caller is not the owner or the token is not staked")
	ErrAlreadyStaked              = NewErrorWithMsg(AlreadyStaked, "token is already staked")
	ErrLedgerNotLinked            = NewErrorWithMsg(LedgerNotLinked, "reward token is not linked")
	ErrArrayLengthMismatch        = NewErrorWithMsg(ArrayLengthMismatch, "minters and amounts length mismatch")
	ErrSupplyAlreadyClaimed       = NewErrorWithMsg(SupplyAlreadyClaimed, "Initial supply has already been claimed")
	ErrInsufficientBalance        = NewErrorWithMsg(InsufficientBalance, "transfer amount exceeds balance")
	ErrInsufficientAllowance      = NewErrorWithMsg(InsufficientAllowance, "insufficient allowance")
	ErrZeroAddress                = NewErrorWithMsg(ZeroAddress, "zero address")
	ErrTokenNotFound              = NewErrorWithMsg(TokenNotFound, "token does not exist")
	ErrNotOwnerNorApproved        = NewErrorWithMsg(NotOwnerNorApproved, "caller is not token owner or approved")
	ErrTransferFromIncorrectOwner = NewErrorWithMsg(TransferFromIncorrectOwner, "transfer from incorrect owner")
	ErrSaleNotActive              = NewErrorWithMsg(SaleNotActive, "Public sale is not active")
	ErrPresaleNotActive           = NewErrorWithMsg(PresaleNotActive, "Presale is not active")
	ErrTooManyPerWallet           = NewErrorWithMsg(TooManyPerWallet, "Too many tokens per wallet")
	ErrNotEnoughTokensLeft        = NewErrorWithMsg(NotEnoughTokensLeft, "Not enough tokens left")
	ErrInvalidProof               = NewErrorWithMsg(InvalidProof, "invalid merkle proof")
	ErrUnauthorized               = NewErrorWithMsg(Unauthorized, "caller is not the owner")
	ErrBadRequest                 = NewErrorWithMsg(BadRequest, "bad request")
	ErrNotFound                   = NewErrorWithMsg(NotFound, "not found")
)
