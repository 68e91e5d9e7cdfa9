package generator

import (
	"strings"

	"github.com/MKhiriev/secure-vault/models"
)

// Character classes.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Numbers   = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Exclusion sets.
const (
	// SimilarChars are look-alike glyphs removed by ExcludeSimilar.
	SimilarChars = "il1Lo0O"

	// AmbiguousChars are characters removed by ExcludeAmbiguous.
	AmbiguousChars = `{}[]()/\'"~,;:.<>`
)

// Charset is the effective alphabet for a set of options.
type Charset struct {
	// Classes holds the filtered alphabet of every enabled class in
	// upper, lower, numbers, symbols order.
	Classes []string

	// All is the concatenation of Classes, or the filtered union of every
	// class when none is enabled.
	All string
}

// BuildCharset applies the class flags and exclusions of opts.
func BuildCharset(opts models.PasswordOptions) Charset {
	var cs Charset

	enabled := []struct {
		on    bool
		chars string
	}{
		{opts.IncludeUppercase, Uppercase},
		{opts.IncludeLowercase, Lowercase},
		{opts.IncludeNumbers, Numbers},
		{opts.IncludeSymbols, Symbols},
	}

	for _, class := range enabled {
		if !class.on {
			continue
		}
		chars := filterChars(class.chars, opts)
		if chars == "" {
			continue
		}
		cs.Classes = append(cs.Classes, chars)
		cs.All += chars
	}

	if cs.All == "" {
		cs.All = filterChars(Uppercase+Lowercase+Numbers+Symbols, opts)
	}

	return cs
}

func filterChars(chars string, opts models.PasswordOptions) string {
	return strings.Map(func(r rune) rune {
		if opts.ExcludeSimilar && strings.ContainsRune(SimilarChars, r) {
			return -1
		}
		if opts.ExcludeAmbiguous && strings.ContainsRune(AmbiguousChars, r) {
			return -1
		}
		return r
	}, chars)
}
