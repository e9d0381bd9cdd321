package services

import "errors"

// Error taxonomy for the ledger and roster core. Handlers map these to HTTP
// status codes; nothing in this package retries them.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidOrderType   = errors.New("invalid order type")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnauthorizedRoster = errors.New("unauthorized roster access")
)
