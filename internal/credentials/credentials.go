// Package credentials turns a submitted password into the value that gets stored.
// It runs before the users gateway; the gateway itself stores what it is given.
package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrRejected marks a password the processor refuses to store, e.g. one
// longer than bcrypt accepts.
var ErrRejected = errors.New("password rejected")

// Processor transforms a plaintext password for storage.
type Processor interface {
	Process(plain string) (string, error)
}

// Bcrypt hashes passwords with bcrypt at the given cost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Process(plain string) (string, error) {
	// empty stays empty so the store still sees the field as missing
	if plain == "" {
		return "", nil
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrRejected, err)
	}
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Plaintext stores passwords unchanged. Only meant for local development.
type Plaintext struct{}

func (Plaintext) Process(plain string) (string, error) { return plain, nil }

// New returns the processor named by kind (bcrypt | none).
func New(kind string, cost int) (Processor, error) {
	switch kind {
	case "", "bcrypt":
		return Bcrypt{Cost: cost}, nil
	case "none", "plaintext":
		return Plaintext{}, nil
	}
	return nil, fmt.Errorf("unknown password hasher %q", kind)
}
