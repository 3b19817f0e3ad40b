package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a failed login. Unknown email and wrong
	// password deliberately surface as the same error so responses cannot be
	// used as a user-existence oracle.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled indicates the account has been deactivated.
	ErrAccountDisabled = errors.New("account is deactivated")
)
