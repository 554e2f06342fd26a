// Package packer serializes user primary keys into self-delimiting byte
// sequences for embedding in signed tokens.
//
// Tokens carry no field-length markers, so every Packer must be able to tell
// from the bytes alone where the packed key ends. Integer and UUID packers use
// a fixed width; Bytes and String use a one-byte length prefix and therefore
// cap values at 255 bytes.
//
// Unpacked integers are returned as int64 (signed packers) or uint64
// (unsigned packers) regardless of the wire width, so user lookups only have
// to handle one Go type per signedness.
//
// # Usage
//
//	p, err := packer.ByName("uuid")
//	if err != nil {
//	    return err
//	}
//	data, err := p.Pack(user.ID)
//	...
//	id, rest, err := p.Unpack(data)
//
// Packers outside the built-in set are passed to token.New with
// token.WithPacker.
package packer
