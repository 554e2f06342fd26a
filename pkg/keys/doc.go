// Package keys handles signing key material: generation, textual encoding
// for environment variables, and HKDF derivation of purpose-bound sub-keys
// from a single master secret.
//
// Keys are read from configuration as strings. A value starting with
// "base64:" or "hex:" is decoded; anything else is used verbatim as UTF-8
// bytes, which keeps plain passphrase-style secrets working.
//
//	key, err := keys.Generate(keys.DefaultSize)
//	fmt.Println(keys.Encode(key)) // base64:...
//
//	raw, err := keys.Parse(os.Getenv("LOGINLINK_SIGNING_KEY"))
//
//	// One master secret, independent keys per purpose.
//	loginKey, err := keys.Derive(master, "login", keys.DefaultSize)
package keys
