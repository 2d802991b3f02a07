package otpiq

import (
	"math/rand/v2"
	"strings"
)

// DefaultDigitCount is the verification code length used when none is requested
const DefaultDigitCount = 6

// GenerateCode returns a string of n random decimal digits, or
// DefaultDigitCount digits when n <= 0. Not suitable for secrets.
func GenerateCode(n int) string {
	if n <= 0 {
		n = DefaultDigitCount
	}

	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
