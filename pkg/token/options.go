package token

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/loginlink/pkg/packer"
)

// Option configures a Protocol.
type Option func(*Protocol)

// WithLogger sets the diagnostics logger. Rejection reasons are logged at
// debug level.
func WithLogger(log *slog.Logger) Option {
	return func(p *Protocol) {
		if log != nil {
			p.logger = log
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Protocol) {
		if now != nil {
			p.now = now
		}
	}
}

// WithPacker overrides the packer named in Config.Packer.
func WithPacker(pk packer.Packer) Option {
	return func(p *Protocol) {
		if pk != nil {
			p.packer = pk
		}
	}
}

// ParseOption adjusts a single Parse or Verify call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	scope     string
	maxAge    time.Duration
	maxAgeSet bool
}

// WithScope selects the token namespace. Tokens only verify in the scope
// they were created for; the default scope is "".
func WithScope(scope string) ParseOption {
	return func(o *parseOptions) { o.scope = scope }
}

// WithMaxAge overrides Config.MaxAge for one call. It has no effect, apart
// from a warning, when the configuration disables timestamps.
func WithMaxAge(d time.Duration) ParseOption {
	return func(o *parseOptions) {
		o.maxAge = d
		o.maxAgeSet = true
	}
}
