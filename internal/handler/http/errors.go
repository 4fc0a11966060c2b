package http

import "errors"

// Sentinel errors used by the authentication middleware and the session
// endpoints when parsing request headers. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrMissingRefreshTokenHeader is returned by the logout endpoint when
	// the "X-Refresh-Token" header is absent. The refresh token is carried
	// out-of-band from the access token on purpose.
	ErrMissingRefreshTokenHeader = errors.New("missing `X-Refresh-Token` header")
)
