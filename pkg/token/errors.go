package token

import "errors"

// Verification failures. Parse collapses all of them into a nil user; Verify
// returns them so callers and logs can tell the stages apart.
var (
	ErrMalformedToken      = errors.New("bad token: cannot decode token")
	ErrMalformedPrimaryKey = errors.New("bad token: cannot extract primary key")
	ErrMalformedTimestamp  = errors.New("bad token: cannot extract timestamp")
	ErrMalformedSignature  = errors.New("bad token: cannot extract signature")
	ErrTokenExpired        = errors.New("expired token")
	ErrUnknownUser         = errors.New("unknown or inactive user")
	ErrSignatureMismatch   = errors.New("invalid token signature")
)

// Token creation failures.
var (
	ErrPackPrimaryKey = errors.New("cannot pack user primary key")
	ErrNilUser        = errors.New("user is nil")
	ErrNoFormats      = errors.New("no token formats configured")
)

// Configuration errors returned by Config.Validate and New.
var (
	ErrMissingSigningKey    = errors.New("signing key is required")
	ErrNoVerificationKeys   = errors.New("at least one verification key is required")
	ErrInvalidSignatureSize = errors.New("signature size must be between 1 and 64 bytes")
	ErrKeyTooLong           = errors.New("keys must not exceed 64 bytes")
	ErrNegativeMaxAge       = errors.New("max age must not be negative")
	ErrUnknownPacker        = errors.New("unknown primary key packer")
)
