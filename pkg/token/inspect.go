package token

import "time"

// Inspection is the unverified content of a token.
type Inspection struct {
	PrimaryKey any
	// Age is set only when the configuration embeds timestamps.
	Age          time.Duration
	HasTimestamp bool
	// IssuedAt is derived from Age and the protocol clock.
	IssuedAt  time.Time
	Signature []byte
}

// Inspect decodes token without checking its signature or expiry. Nothing
// in the result may be trusted; it exists for support tooling.
func (p *Protocol) Inspect(token string) (*Inspection, error) {
	f, err := p.split(token)
	if err != nil {
		return nil, err
	}

	in := &Inspection{
		PrimaryKey:   f.primaryKey,
		HasTimestamp: f.hasAge,
		Signature:    f.signature,
	}
	if f.hasAge {
		in.Age = time.Duration(f.age) * time.Second
		in.IssuedAt = time.Unix(p.now().Unix()-f.age, 0).UTC()
	}
	return in, nil
}
