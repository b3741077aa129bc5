package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

var refNumberRange = big.NewInt(900000)

// GenerateReferenceNumber returns a uniformly random 6-digit booking
// reference (100000-999999). Uniqueness is checked by the caller against
// existing appointments.
func GenerateReferenceNumber() string {
	n, err := rand.Int(rand.Reader, refNumberRange)
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms.
		return "100000"
	}
	return strconv.FormatInt(100000+n.Int64(), 10)
}
