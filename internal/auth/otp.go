package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// CodeLength is the number of digits in a one-time code.
const CodeLength = 6

const (
	otpMin  = 100000
	otpSpan = 900000
)

// CodeGenerator produces one-time codes for email verification and
// password reset.
type CodeGenerator interface {
	Generate() (string, error)
}

type otpGenerator struct{}

// NewCodeGenerator returns a generator backed by crypto/rand. Codes are
// drawn uniformly from [100000, 999999], so they are always six digits.
func NewCodeGenerator() CodeGenerator {
	return otpGenerator{}
}

func (otpGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(otpMin+n.Int64(), 10), nil
}
