// Package token implements stateless signed login tokens.
//
// A token is the URL-safe, unpadded base64 encoding of
//
//	packed primary key | timestamp (4 bytes, optional) | signature
//
// with no delimiters or length prefixes. The primary key packer is
// self-delimiting, the timestamp is present exactly when Config.MaxAge is
// positive, and the signature is Config.SignatureSize bytes.
//
// The signature is a keyed BLAKE2b MAC (see package keyedhash) over
//
//	packed primary key | timestamp | revocation key | scope
//
// The revocation key is derived from the user's password hash tail, email
// and last login (per configuration) and is never transmitted: the verifier
// recomputes it from the user's current state, so changing any of those
// attributes invalidates every outstanding token without server-side storage.
// The scope partitions tokens that share keys ("" for login, "reset" for
// password reset, and so on).
//
// # Verification
//
// Verify checks, in order: encoding, primary key, timestamp, signature
// length, expiry, user lookup, signature. Each failure maps to a sentinel
// error. Parse wraps Verify and collapses every failure into a nil user so
// that callers cannot leak a verification oracle to token holders; the
// reasons go to the debug log.
//
// # Usage
//
//	cfg := token.DefaultConfig()
//	cfg.SigningKey = os.Getenv("LOGINLINK_SIGNING_KEY")
//	cfg.MaxAge = 15 * time.Minute
//
//	proto, err := token.New(cfg, token.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	tok, err := proto.Create(user, "")
//
//	user := proto.Parse(ctx, tok, token.LookupFunc(func(ctx context.Context, pk any) (token.User, error) {
//	    return store.ActiveUserByID(ctx, pk.(int64))
//	}))
//	if user == nil {
//	    // not authenticated
//	}
//
// # Key rotation
//
// Put the new key in SigningKey and list it first in VerificationKeys,
// followed by the previous key. Tokens signed with the previous key keep
// working until it is removed from the list.
package token
