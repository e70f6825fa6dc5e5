package domain

import "errors"

// Validation and business-rule failures surfaced by trading operations.
// Handlers map these onto HTTP status codes; anything not in this set is
// treated as a store failure and reported as an internal error.
var (
	// ErrInvalidInput covers malformed, missing or non-positive amounts
	// and share counts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSymbol means the price oracle could not resolve the symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrOracleUnavailable means the price oracle did not answer in time.
	ErrOracleUnavailable = errors.New("price oracle unavailable")

	// ErrPriceUnavailable means a held position could not be valued because
	// the oracle no longer resolves its symbol.
	ErrPriceUnavailable = errors.New("price unavailable for held symbol")

	// ErrInsufficientFunds means the user's cash cannot cover a buy or withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares means the user holds fewer shares than a sell requests.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrUnauthorized means the request carries no valid authenticated user.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUsernameTaken means registration collided with an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound means no user matches the given id or username.
	ErrUserNotFound = errors.New("user not found")
)
