// Package auth holds the session/credential core: password hashing, the
// access-token codec, and the ownership authorization guard. It performs no
// I/O; persistence and transport stay in the repository and handler layers.
package auth

import "errors"

var (
	// ErrPasswordEncoding reports malformed hasher input (oversized password,
	// embedded null bytes). Distinct from a verification mismatch.
	ErrPasswordEncoding = errors.New("password cannot be encoded")

	// ErrMalformedHash reports a stored hash that is not a valid bcrypt
	// string. Callers must log it; it is never the same as "wrong password".
	ErrMalformedHash = errors.New("stored password hash is malformed")

	// ErrTokenMalformed reports a token whose structure cannot be parsed.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenSignature reports a token whose signature does not verify.
	// Always terminal, logged as a security event.
	ErrTokenSignature = errors.New("token signature is invalid")

	// ErrTokenExpired reports a structurally valid, correctly signed token
	// past its expiry. Expected during rotation, fatal everywhere else.
	ErrTokenExpired = errors.New("token has expired")

	// ErrAuthentication covers every failure that must end the caller's
	// session: unknown or expired refresh token, unresolvable subject,
	// bad credentials. Maps to 401 at the HTTP boundary.
	ErrAuthentication = errors.New("authentication failed")

	// ErrForbidden means the caller is known and valid but not allowed to
	// perform the action. Maps to 403; the session stays intact.
	ErrForbidden = errors.New("operation not permitted")
)
