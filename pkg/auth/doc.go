// Package auth is the login backend built on package token: it issues login
// links for stored users and authenticates the tokens those links carry.
//
// The service needs a Storage implementation (package pg provides one for
// PostgreSQL) and optionally a ReplayGuard (package redis provides one) to
// make every token single-use.
//
// # Issuing links
//
//	protocol := token.MustNew(cfg, token.WithLogger(log))
//	svc := auth.NewService(store, protocol,
//		auth.WithLogger(log),
//		auth.WithReplayGuard(guard),
//	)
//
//	link, err := svc.IssueLink(ctx, userID, "", "https://app.example.com/login")
//	if err != nil {
//		// ErrUserNotFound, ErrUserInactive, storage errors
//	}
//	// Email link.URL to the user.
//
// # Authenticating
//
//	user, err := svc.Authenticate(ctx, r.URL.Query().Get(auth.DefaultTokenParam))
//	switch {
//	case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenAlreadyUsed):
//		// Reject and offer a new link.
//	case err != nil:
//		// Storage failure.
//	}
//
// Inactive accounts never authenticate. A successful login records the last
// login time; with one-time tokens enabled this revokes the token that was
// just used, and failing to record it fails the login.
//
// # Key rotation
//
// Rotate swaps the protocol atomically. Put the new key first in
// VerificationKeys and keep the old one until its tokens have expired:
//
//	cfg.SigningKey = newKey
//	cfg.VerificationKeys = []string{newKey, oldKey}
//	if err := svc.Rotate(cfg); err != nil {
//		// invalid configuration, previous protocol still active
//	}
package auth
