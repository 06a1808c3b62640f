package identifier

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength   = 9
)

// Generate produces a human-legible, collision-resistant identifier of the
// form <PREFIX>-<unix-millis>-<random base36 suffix>, e.g.
// "PAY-1756700000000-k3f9x2m1q". The time component keeps ids roughly
// sortable; the random suffix makes collisions negligible at POS volumes.
// If a collision does occur, it surfaces as a uniqueness-constraint failure
// from the database and the caller retries with a fresh id.
func Generate(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), randomSuffix(suffixLength))
}

// GenerateCompact produces a shorter uppercase identifier without the time
// component, e.g. "PRD3F9X2M1QK". Used for barcodes and SKUs.
func GenerateCompact(prefix string, length int) string {
	return prefix + strings.ToUpper(randomSuffix(length))
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform entropy source is broken
			panic(fmt.Sprintf("identifier: read random: %v", err))
		}
		b[i] = base36Alphabet[idx.Int64()]
	}
	return string(b)
}
