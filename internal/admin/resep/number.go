package resep

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

const numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Bytes at or above this bound are discarded so every symbol is equally likely.
const numberByteLimit = 256 - 256%len(numberAlphabet)

// NumberGenerator produces prescription numbers for the given instant.
type NumberGenerator func(now time.Time) string

// GenerateNumber returns a number shaped RSP-YYYYMMDD-XXXX with a random uppercase alphanumeric suffix.
func GenerateNumber(now time.Time) string {
	suffix, err := randomSuffix(rand.Reader, 4)
	if err != nil {
		panic(fmt.Errorf("generate prescription number: %w", err))
	}
	return fmt.Sprintf("RSP-%s-%s", now.Format("20060102"), suffix)
}

func randomSuffix(src io.Reader, n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(src, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= numberByteLimit {
				continue
			}
			out = append(out, numberAlphabet[int(b)%len(numberAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
