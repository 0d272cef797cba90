package adapters

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/catalog/internal/domain"
)

// BcryptHasher hashes secrets with bcrypt at a fixed cost
type BcryptHasher struct {
	cost int
}

var _ domain.Hasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher. An out-of-range cost falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(text string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(text), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash: %w", err)
	}
	return string(digest), nil
}

// Compare reports whether value matches digest
func (h *BcryptHasher) Compare(value, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(value)) == nil
}
