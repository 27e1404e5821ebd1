package lobby

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin   = 100000
	codeRange = 900000
)

// NewCode returns a random six-digit lobby code.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
