package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateCode returns a 6-digit numeric one-time code drawn uniformly
// from [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// VerifyCode reports whether the presented code matches the stored one and
// has not expired. The code itself is never logged.
func VerifyCode(presented, stored string, expiresAt time.Time) bool {
	if presented == "" || stored == "" {
		return false
	}
	if !time.Now().Before(expiresAt) {
		return false
	}
	return presented == stored
}
