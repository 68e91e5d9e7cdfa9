// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator produces random passwords and scores password strength.
//
// All randomness comes from crypto/rand. Indices are drawn uniformly (no
// modulo bias) and the final arrangement is a Fisher-Yates shuffle, so the
// position of the per-class guaranteed characters is not predictable.
package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/MKhiriev/secure-vault/models"
)

// Length bounds accepted by [ValidateOptions].
const (
	MinLength     = 4
	MaxLength     = 128
	DefaultLength = 16
)

// Generator draws passwords from a random source. The zero value is not
// usable; construct it with [New].
type Generator struct {
	rand io.Reader
}

// New returns a generator backed by crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// DefaultOptions returns the options offered to a user by default.
func DefaultOptions() models.PasswordOptions {
	return models.PasswordOptions{
		Length:           DefaultLength,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
		ExcludeSimilar:   true,
		ExcludeAmbiguous: false,
	}
}

// Generate builds a password for opts. It does not validate opts; callers that
// accept user input should run [ValidateOptions] first.
//
// One character of every enabled class is guaranteed, the remainder is drawn
// from the combined charset and the result is shuffled. When opts.Length is
// smaller than the number of enabled classes the shuffled result is truncated
// to opts.Length, so some class may then be missing. A non-positive length
// yields the empty password.
func (g *Generator) Generate(opts models.PasswordOptions) (models.GeneratedPassword, error) {
	cs := BuildCharset(opts)
	length := max(opts.Length, 0)

	password := make([]byte, 0, max(length, len(cs.Classes)))

	for _, class := range cs.Classes {
		c, err := g.pick(class)
		if err != nil {
			return models.GeneratedPassword{}, err
		}
		password = append(password, c)
	}

	for len(password) < length {
		c, err := g.pick(cs.All)
		if err != nil {
			return models.GeneratedPassword{}, err
		}
		password = append(password, c)
	}

	if err := g.shuffle(password); err != nil {
		return models.GeneratedPassword{}, err
	}
	password = password[:length]

	pw := string(password)
	return models.GeneratedPassword{
		Password: pw,
		Strength: CalculateStrength(pw, len(cs.All)),
		Entropy:  CalculateEntropy(len(pw), len(cs.All)),
	}, nil
}

func (g *Generator) pick(chars string) (byte, error) {
	i, err := g.randIndex(len(chars))
	if err != nil {
		return 0, err
	}
	return chars[i], nil
}

// shuffle is an in-place Fisher-Yates shuffle.
func (g *Generator) shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := g.randIndex(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

// randIndex returns a uniform integer in [0, n).
func (g *Generator) randIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: empty range", ErrRandomSource)
	}
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return int(v.Int64()), nil
}
