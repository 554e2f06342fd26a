package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/loginlink/pkg/logger"
	"github.com/dmitrymomot/loginlink/pkg/packer"
)

// Protocol creates and verifies tokens for one immutable Config. It holds no
// mutable state and is safe for concurrent use. To rotate keys, build a new
// Protocol with WithConfig and swap it in; calls already running keep the
// settings they started with.
type Protocol struct {
	cfg          Config
	signingKey   []byte
	verification [][]byte
	packer       packer.Packer
	logger       *slog.Logger
	now          func() time.Time
	opts         []Option
}

// New validates cfg and returns a Protocol.
func New(cfg Config, opts ...Option) (*Protocol, error) {
	signing, verification, err := cfg.decodeKeys()
	if err != nil {
		return nil, err
	}

	p := &Protocol{
		cfg:          cfg,
		signingKey:   signing,
		verification: verification,
		logger:       logger.Discard(),
		now:          time.Now,
		opts:         opts,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.packer == nil {
		name := cfg.Packer
		if name == "" {
			name = DefaultConfig().Packer
		}
		pk, err := packer.ByName(name)
		if err != nil {
			return nil, errors.Join(ErrUnknownPacker, err)
		}
		p.packer = pk
	}

	// Validate after the packer is resolved so WithPacker can stand in for
	// an unregistered name.
	check := cfg
	check.Packer = ""
	if err := check.Validate(); err != nil {
		return nil, err
	}

	p.logger = p.logger.With(logger.Component("token"))
	return p, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(cfg Config, opts ...Option) *Protocol {
	p, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("token: invalid configuration: %v", err))
	}
	return p
}

// WithConfig returns a new Protocol for cfg with the options this one was
// built with.
func (p *Protocol) WithConfig(cfg Config) (*Protocol, error) {
	return New(cfg, p.opts...)
}

// Config returns the configuration the protocol was built with.
func (p *Protocol) Config() Config {
	return p.cfg
}

// Create mints a token for user in scope.
//
// Layout: packed primary key, optional 4-byte timestamp, signature. The
// revocation key and the scope are signed but not transmitted.
func (p *Protocol) Create(user User, scope string) (string, error) {
	if isNilUser(user) {
		return "", ErrNilUser
	}

	primaryKey, err := p.packer.Pack(user.GetPrimaryKey())
	if err != nil {
		return "", errors.Join(ErrPackPrimaryKey, err)
	}

	var timestamp []byte
	if p.cfg.TimestampsEnabled() {
		timestamp = PackTimestamp(p.now())
	}

	payload := make([]byte, 0, len(primaryKey)+len(timestamp)+p.cfg.SignatureSize)
	payload = append(payload, primaryKey...)
	payload = append(payload, timestamp...)

	signature, err := Sign(p.message(payload, user, scope), p.signingKey, p.cfg.SignatureSize)
	if err != nil {
		return "", err
	}

	return Encode(append(payload, signature...)), nil
}

// Parse returns the user a token authenticates, or nil. The reason for a
// rejection is only available in the debug log; use Verify to get it.
func (p *Protocol) Parse(ctx context.Context, token string, lookup UserLookup, opts ...ParseOption) User {
	user, err := p.Verify(ctx, token, lookup, opts...)
	if err != nil {
		return nil
	}
	return user
}

// Detect reports whether token has the shape of this format.
func (p *Protocol) Detect(token string) bool {
	return Detect(token)
}

// Verify runs the full validation pipeline and returns the user or the
// reason for rejection. The error wraps one of the ErrMalformed*,
// ErrTokenExpired, ErrUnknownUser or ErrSignatureMismatch sentinels.
//
// Expiry is checked before the user lookup because it is cheap. The lookup
// must precede signature verification since the revocation key is derived
// from the user's current state.
func (p *Protocol) Verify(ctx context.Context, token string, lookup UserLookup, opts ...ParseOption) (User, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	log := p.logger.With(logger.Scope(o.scope))

	f, err := p.split(token)
	if err != nil {
		log.DebugContext(ctx, "Bad token", logger.Reason(err))
		return nil, err
	}

	maxAge := p.cfg.MaxAge
	if o.maxAgeSet {
		if p.cfg.TimestampsEnabled() {
			maxAge = o.maxAge
		} else {
			log.WarnContext(ctx, "Ignoring max age override: timestamps are disabled by configuration")
		}
	}

	if f.hasAge && float64(f.age) >= maxAge.Seconds() {
		log.DebugContext(ctx, "Expired token", logger.Age(f.age))
		return nil, fmt.Errorf("%w: age = %d seconds", ErrTokenExpired, f.age)
	}

	pkAttr := logger.PrimaryKey(p.cfg.PrimaryKeyField, f.primaryKey)

	if lookup == nil {
		log.ErrorContext(ctx, "No user lookup configured", pkAttr)
		return nil, ErrUnknownUser
	}
	user, err := lookup.LookupUser(ctx, f.primaryKey)
	if err != nil || isNilUser(user) {
		log.DebugContext(ctx, "Unknown or inactive user", pkAttr, logger.Error(err))
		if err != nil {
			return nil, errors.Join(ErrUnknownUser, err)
		}
		return nil, ErrUnknownUser
	}

	if !verifySignature(p.message(f.signed, user, o.scope), f.signature, p.verification) {
		log.DebugContext(ctx, "Invalid token", pkAttr)
		return nil, ErrSignatureMismatch
	}

	log.DebugContext(ctx, "Valid token", pkAttr)
	return user, nil
}

// message builds the signed bytes: payload (primary key and timestamp),
// revocation key, scope.
func (p *Protocol) message(payload []byte, user User, scope string) []byte {
	revocation := RevocationKey(user, p.cfg)
	msg := make([]byte, 0, len(payload)+len(revocation)+len(scope))
	msg = append(msg, payload...)
	msg = append(msg, revocation...)
	return append(msg, scope...)
}

type fields struct {
	primaryKey any
	hasAge     bool
	age        int64
	signature  []byte
	// signed is the primary key and timestamp as transmitted.
	signed []byte
}

func (p *Protocol) split(token string) (fields, error) {
	data, err := Decode(token)
	if err != nil {
		return fields{}, errors.Join(ErrMalformedToken, err)
	}

	pk, rest, err := p.packer.Unpack(data)
	if err != nil {
		return fields{}, errors.Join(ErrMalformedPrimaryKey, err)
	}

	f := fields{primaryKey: pk}
	if p.cfg.TimestampsEnabled() {
		f.age, rest, err = UnpackTimestamp(rest, p.now())
		if err != nil {
			return fields{}, err
		}
		f.hasAge = true
	}

	if len(rest) != p.cfg.SignatureSize {
		return fields{}, ErrMalformedSignature
	}
	f.signature = rest
	f.signed = data[:len(data)-len(rest)]
	return f, nil
}
