package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NumberGenerator returns zero-padded random numeric order numbers.
type NumberGenerator struct {
	digits int
	max    *big.Int
}

func NewNumberGenerator(digits int) NumberGenerator {
	if digits < 4 {
		digits = 4
	}
	if digits > 18 {
		digits = 18
	}
	return NumberGenerator{digits: digits, max: new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)}
}

func (g NumberGenerator) Next() (string, error) {
	n, err := rand.Int(rand.Reader, g.max)
	if err != nil {
		return "", fmt.Errorf("order number: %w", err)
	}
	return fmt.Sprintf("%0*d", g.digits, n.Int64()), nil
}
