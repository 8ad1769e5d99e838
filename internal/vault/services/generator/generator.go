// Package generator produces random passwords from selectable character
// classes and rates their strength.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/passvault/internal/common"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()-_=+[]{};:,.<>?"
)

const (
	MinLength = 6
	MaxLength = 64
)

// Strength ratings.
const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

// Options selects the password length and the character classes to draw
// from. At least one class must be enabled.
type Options struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool
}

// Generate returns a random password built from the enabled classes, with
// at least one character of each enabled class, plus its strength rating.
func Generate(opts Options) (password, strength string, err error) {
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", "", fmt.Errorf("length must be between %d and %d: %w", MinLength, MaxLength, common.ErrValidation)
	}

	var classes []string
	if opts.Lowercase {
		classes = append(classes, lowercase)
	}
	if opts.Uppercase {
		classes = append(classes, uppercase)
	}
	if opts.Digits {
		classes = append(classes, digits)
	}
	if opts.Symbols {
		classes = append(classes, symbols)
	}
	if len(classes) == 0 {
		return "", "", fmt.Errorf("at least one character class is required: %w", common.ErrValidation)
	}
	if len(classes) > opts.Length {
		return "", "", fmt.Errorf("length too short for the selected classes: %w", common.ErrValidation)
	}

	var pool string
	for _, c := range classes {
		pool += c
	}

	// one guaranteed character per enabled class, the rest from the full pool
	buf := make([]byte, opts.Length)
	for i, c := range classes {
		buf[i] = randByte(c)
	}
	for i := len(classes); i < opts.Length; i++ {
		buf[i] = randByte(pool)
	}
	shuffle(buf)

	return string(buf), rate(opts), nil
}

// rate gives a coarse strength estimate from length and class variety.
func rate(opts Options) string {
	variety := 0
	for _, on := range []bool{opts.Lowercase, opts.Uppercase, opts.Digits, opts.Symbols} {
		if on {
			variety++
		}
	}
	switch {
	case opts.Length >= 12 && variety >= 3:
		return StrengthStrong
	case opts.Length >= 8 && variety >= 2:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

func randByte(pool string) byte {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	if err != nil {
		panic(err)
	}
	return pool[n.Int64()]
}

// shuffle is a Fisher-Yates pass driven by crypto/rand, so the guaranteed
// class characters do not sit at fixed positions.
func shuffle(b []byte) {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			panic(err)
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
}
