package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/steamtrack/project-tracking-api/internal/constants"
)

// GenerateJoinKey generates a random 5-character uppercase-alphanumeric
// project join key. Uniqueness is not checked here; the caller inserts and
// retries on a duplicate-key error.
func GenerateJoinKey() (string, error) {
	key := make([]byte, constants.JoinKeyLength)
	max := big.NewInt(int64(len(constants.JoinKeyAlphabet)))

	for i := range key {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random key character: %w", err)
		}
		key[i] = constants.JoinKeyAlphabet[n.Int64()]
	}

	return string(key), nil
}
