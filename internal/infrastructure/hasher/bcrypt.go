package hasher

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used for stored passwords.
	DefaultCost = 10

	// MaxPasswordBytes is how much of a password bcrypt actually reads.
	MaxPasswordBytes = 72
)

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash keeps only the first MaxPasswordBytes bytes, so longer passwords are
// accepted instead of failing with bcrypt.ErrPasswordTooLong.
func (b *Bcrypt) Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(truncate(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Compare applies the same truncation as Hash.
func (b *Bcrypt) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(plain))
}

func truncate(plain string) []byte {
	p := []byte(plain)
	if len(p) > MaxPasswordBytes {
		p = p[:MaxPasswordBytes]
	}
	return p
}
