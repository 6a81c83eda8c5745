package utils

import (
	"crypto/rand" // secure random number generation
	"math/big"
	"strconv"
)

// otpCodeSpan covers the six-digit range 100000..999999. Codes never
// start with a zero, which keeps them compatible with clients that
// strip leading zeros from numeric input.
const (
	otpCodeMin  = 100000
	otpCodeSpan = 900000
)

// GenerateOTPCode returns a uniformly random six-digit decimal code as a
// string. It draws from crypto/rand; an error is only possible when the
// system's randomness source fails.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpCodeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpCodeMin, 10), nil
}
