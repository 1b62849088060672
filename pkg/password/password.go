package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher is the password hashing capability: hash(secret) -> digest,
// verify(secret, digest) -> bool.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

type Bcrypt struct {
	cost int
}

var _ Hasher = (*Bcrypt)(nil)

func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("cannot hash password: %w", err)
	}

	return string(digest), nil
}

func (b *Bcrypt) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
