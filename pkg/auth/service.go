package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/loginlink/pkg/logger"
	"github.com/dmitrymomot/loginlink/pkg/token"
)

const (
	// DefaultTokenParam is the query parameter carrying the token in links.
	DefaultTokenParam = "sesame"
	// DefaultReplayTTL bounds replay records when tokens never expire.
	DefaultReplayTTL = 7 * 24 * time.Hour
)

// Service is the login backend around a token.Protocol: it issues links for
// stored users and authenticates the tokens they carry.
type Service struct {
	storage    Storage
	protocol   atomic.Pointer[token.Protocol]
	guard      ReplayGuard
	replayTTL  time.Duration
	tokenParam string
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Service)

// WithLogger sets a custom logger for the service
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock replaces time.Now for last-login stamps and link expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithReplayGuard makes every token single-use regardless of the one-time
// setting.
func WithReplayGuard(guard ReplayGuard) Option {
	return func(s *Service) {
		s.guard = guard
	}
}

// WithReplayTTL sets how long consumed tokens are remembered. The default is
// the configured max age, or DefaultReplayTTL when tokens never expire.
func WithReplayTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.replayTTL = ttl
		}
	}
}

// WithTokenParam sets the query parameter used by IssueLink.
func WithTokenParam(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.tokenParam = name
		}
	}
}

// NewService creates a login service for storage using protocol.
func NewService(storage Storage, protocol *token.Protocol, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		tokenParam: DefaultTokenParam,
		logger:     logger.Discard(),
		now:        time.Now,
	}
	s.protocol.Store(protocol)

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("auth"))

	return s
}

// Protocol returns the protocol currently in use.
func (s *Service) Protocol() *token.Protocol {
	return s.protocol.Load()
}

// Rotate swaps in a protocol built from cfg, typically with a new signing
// key and the old one kept for verification. Calls in flight finish with the
// previous protocol.
func (s *Service) Rotate(cfg token.Config) error {
	next, err := s.protocol.Load().WithConfig(cfg)
	if err != nil {
		return err
	}
	s.protocol.Store(next)
	s.logger.Info("token configuration rotated",
		slog.Int("verification_keys", max(len(cfg.VerificationKeys), 1)),
	)
	return nil
}

// LookupUser implements token.UserLookup. Missing and inactive accounts
// resolve to nil.
func (s *Service) LookupUser(ctx context.Context, pk any) (token.User, error) {
	user, err := s.storage.GetUserByID(ctx, pk)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, errors.Join(ErrLookupFailed, err)
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}
	return user, nil
}

// IssueToken mints a token for the stored user id in scope.
func (s *Service) IssueToken(ctx context.Context, id any, scope string) (string, error) {
	user, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", errors.Join(ErrLookupFailed, err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}

	tok, err := s.protocol.Load().Create(user, scope)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}
	return tok, nil
}

// IssueLink mints a token like IssueToken and appends it to baseURL as a
// query parameter.
func (s *Service) IssueLink(ctx context.Context, id any, scope, baseURL string) (*LoginLink, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	tok, err := s.IssueToken(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set(s.tokenParam, tok)
	u.RawQuery = q.Encode()

	link := &LoginLink{Token: tok, URL: u.String()}
	if maxAge := s.protocol.Load().Config().MaxAge; maxAge > 0 {
		link.ExpiresAt = s.now().Add(maxAge)
	}
	return link, nil
}

// Authenticate verifies tok and returns the user it logs in. Every rejection
// is reported as ErrTokenInvalid; expiry is checked before the signature, so
// telling it apart would answer questions about forged tokens. The reason is
// in the debug log. Storage failures are returned as such.
//
// On success the last login time is updated. With one-time tokens that
// update is what revokes the token, so a failure to record it fails the
// login.
func (s *Service) Authenticate(ctx context.Context, tok string, opts ...token.ParseOption) (*User, error) {
	p := s.protocol.Load()

	verified, err := p.Verify(ctx, tok, s, opts...)
	if err != nil {
		if errors.Is(err, ErrLookupFailed) {
			return nil, err
		}
		s.logger.DebugContext(ctx, "token rejected", logger.Reason(err))
		return nil, ErrTokenInvalid
	}
	user := verified.(*User)

	if s.guard != nil {
		if err := s.guard.ConsumeToken(ctx, TokenID(tok), s.ttl(p)); err != nil {
			if errors.Is(err, ErrTokenAlreadyUsed) {
				s.logger.WarnContext(ctx, "token replayed",
					logger.PrimaryKey(p.Config().PrimaryKeyField, user.ID),
				)
				return nil, ErrTokenAlreadyUsed
			}
			return nil, fmt.Errorf("failed to consume token: %w", err)
		}
	}

	now := s.now()
	if err := s.storage.UpdateLastLogin(ctx, user.ID, now); err != nil {
		if p.Config().OneTime {
			return nil, errors.Join(ErrRecordLogin, err)
		}
		s.logger.ErrorContext(ctx, "failed to update last login",
			logger.PrimaryKey(p.Config().PrimaryKeyField, user.ID),
			logger.Error(err),
		)
	} else {
		user.LastLoginAt = &now
	}

	return user, nil
}

func (s *Service) ttl(p *token.Protocol) time.Duration {
	if s.replayTTL > 0 {
		return s.replayTTL
	}
	if maxAge := p.Config().MaxAge; maxAge > 0 {
		return maxAge
	}
	return DefaultReplayTTL
}

// TokenID is the key replay guards store: a hex SHA-256 of the token in its
// canonical encoding, so the token itself never reaches the store and
// differently padded copies of one token share an id.
func TokenID(tok string) string {
	if raw, err := token.Decode(tok); err == nil {
		tok = token.Encode(raw)
	}
	sum := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(sum[:])
}
