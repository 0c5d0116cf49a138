package ledger

import "errors"

var (
	// ErrGameNotFound means the game identifier (or join code) does not
	// resolve. Maps to 404 at the HTTP layer.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidInput covers malformed or missing caller input: blank
	// names, unknown transaction types, non-positive amounts,
	// same-player transfers, unknown player references. Maps to 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientFunds means a withdrawal or transfer exceeds the
	// source player's balance. Maps to 409.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
