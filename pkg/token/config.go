package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/loginlink/pkg/keys"
	"github.com/dmitrymomot/loginlink/pkg/keyedhash"
	"github.com/dmitrymomot/loginlink/pkg/packer"
)

// Config holds the deployment-wide token settings. Start from DefaultConfig:
// the zero value disables password-change revocation, which is rarely wanted.
//
// Timestamps are embedded in tokens only when MaxAge is positive. Tokens
// issued under one MaxAge setting (zero vs positive) cannot be parsed under
// the other because the wire layout differs.
type Config struct {
	// SigningKey signs new tokens. See keys.Parse for accepted encodings.
	SigningKey string `env:"LOGINLINK_SIGNING_KEY" yaml:"signing_key"`
	// VerificationKeys are tried in order when verifying. Empty means
	// SigningKey only. Keep a retired signing key here to rotate keys
	// without invalidating outstanding tokens.
	VerificationKeys []string `env:"LOGINLINK_VERIFICATION_KEYS" envSeparator:"," yaml:"verification_keys"`
	// SignatureSize is the truncated MAC length in bytes.
	SignatureSize int `env:"LOGINLINK_SIGNATURE_SIZE" yaml:"signature_size"`
	// MaxAge is the token lifetime. Zero disables timestamps and expiry.
	MaxAge time.Duration `env:"LOGINLINK_MAX_AGE" yaml:"max_age"`
	// PrimaryKeyField labels the primary key in diagnostics.
	PrimaryKeyField string `env:"LOGINLINK_PRIMARY_KEY_FIELD" yaml:"primary_key_field"`
	// Packer names the primary key packer, see packer.ByName.
	Packer string `env:"LOGINLINK_PACKER" yaml:"packer"`

	InvalidateOnPasswordChange bool `env:"LOGINLINK_INVALIDATE_ON_PASSWORD_CHANGE" yaml:"invalidate_on_password_change"`
	InvalidateOnEmailChange    bool `env:"LOGINLINK_INVALIDATE_ON_EMAIL_CHANGE" yaml:"invalidate_on_email_change"`
	// OneTime revokes a token as soon as the user logs in, by feeding the
	// last login time into the signature.
	OneTime bool `env:"LOGINLINK_ONE_TIME" yaml:"one_time"`
}

// DefaultConfig returns the recommended settings without keys.
func DefaultConfig() Config {
	return Config{
		SignatureSize:              10,
		PrimaryKeyField:            "pk",
		Packer:                     "int32",
		InvalidateOnPasswordChange: true,
	}
}

// TimestampsEnabled reports whether tokens carry an issuance timestamp.
func (c Config) TimestampsEnabled() bool {
	return c.MaxAge > 0
}

// Validate checks the configuration without building a protocol.
func (c Config) Validate() error {
	_, _, err := c.decodeKeys()
	if err != nil {
		return err
	}
	if c.SignatureSize < 1 || c.SignatureSize > keyedhash.Size {
		return ErrInvalidSignatureSize
	}
	if c.MaxAge < 0 {
		return ErrNegativeMaxAge
	}
	if c.Packer != "" {
		if _, err := packer.ByName(c.Packer); err != nil {
			return errors.Join(ErrUnknownPacker, err)
		}
	}
	return nil
}

func (c Config) decodeKeys() (signing []byte, verification [][]byte, err error) {
	if c.SigningKey == "" {
		return nil, nil, ErrMissingSigningKey
	}
	signing, err = decodeKey(c.SigningKey)
	if err != nil {
		return nil, nil, fmt.Errorf("signing key: %w", err)
	}

	encoded := c.VerificationKeys
	if len(encoded) == 0 {
		encoded = []string{c.SigningKey}
	}
	verification = make([][]byte, 0, len(encoded))
	for i, s := range encoded {
		key, err := decodeKey(s)
		if err != nil {
			return nil, nil, fmt.Errorf("verification key %d: %w", i, err)
		}
		verification = append(verification, key)
	}
	if len(verification) == 0 {
		return nil, nil, ErrNoVerificationKeys
	}
	return signing, verification, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := keys.Parse(s)
	if err != nil {
		return nil, err
	}
	if len(key) > keyedhash.KeySize {
		return nil, ErrKeyTooLong
	}
	return key, nil
}
