package packer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Packer converts primary keys to and from bytes.
//
// Unpack must consume exactly the bytes written by Pack and return everything
// after them untouched.
type Packer interface {
	Pack(pk any) ([]byte, error)
	Unpack(data []byte) (pk any, rest []byte, err error)
}

// TextParser is implemented by packers that can build a primary key from its
// textual form, as typed on a command line or read from a config file.
type TextParser interface {
	ParseText(s string) (any, error)
}

// ParseText converts s into a primary key accepted by p.
func ParseText(p Packer, s string) (any, error) {
	tp, ok := p.(TextParser)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not parse text", ErrUnsupportedType, p)
	}
	return tp.ParseText(s)
}

var registry = map[string]Packer{
	"int16":  Int16,
	"short":  Int16,
	"uint16": Uint16,
	"int32":  Int32,
	"int":    Int32,
	"uint32": Uint32,
	"int64":  Int64,
	"bigint": Int64,
	"uint64": Uint64,
	"uuid":   UUID,
	"bytes":  Bytes,
	"string": String,
	"str":    String,
}

// ByName returns the built-in packer known as name.
func ByName(name string) (Packer, error) {
	p, ok := registry[name]
	if !ok {
		return nil, errors.Join(ErrUnknownPacker, fmt.Errorf("%q, expected one of %s", name, strings.Join(Names(), ", ")))
	}
	return p, nil
}

// Names lists the built-in packer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
