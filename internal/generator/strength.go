package generator

import (
	"math"
	"strings"

	"github.com/MKhiriev/secure-vault/models"
)

const (
	// MaxScore is the highest strength score. Scores range over 0..MaxScore.
	MaxScore = 4

	shortPasswordLength = 8
)

var strengthLevels = [MaxScore + 1]struct {
	label string
	color string
}{
	{"Very Weak", "#ef4444"},
	{"Weak", "#f97316"},
	{"Medium", "#eab308"},
	{"Strong", "#22c55e"},
	{"Very Strong", "#10b981"},
}

var commonPrefixes = []string{"abc", "123", "qwe", "password"}

var commonWords = []string{
	"password", "admin", "user", "login", "1234", "qwerty",
	"letmein", "welcome", "monkey", "dragon", "master",
}

// CalculateEntropy returns length * log2(charsetSize) bits, or 0 for an empty
// charset.
func CalculateEntropy(length, charsetSize int) float64 {
	if length <= 0 || charsetSize <= 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(charsetSize))
}

// CalculateStrength scores password on a 0..4 scale.
//
// Points: length >= 12, length >= 16, three or more character classes, all
// four classes, entropy >= 60 bits, entropy >= 80 bits. A run of three
// identical characters and a well-known prefix each cost one point.
func CalculateStrength(password string, charsetSize int) models.PasswordStrength {
	var (
		feedback []string
		score    int
	)

	length := len([]rune(password))
	if length < shortPasswordLength {
		feedback = append(feedback, "Password is too short (minimum 8 characters)")
	}
	if length >= 12 {
		score++
	}
	if length >= 16 {
		score++
	}

	variety := classCount(password)
	if variety >= 3 {
		score++
	}
	if variety == 4 {
		score++
	}

	entropy := CalculateEntropy(length, charsetSize)
	if entropy >= 60 {
		score++
	}
	if entropy >= 80 {
		score++
	}

	if hasRepeatedRun(password, 3) {
		feedback = append(feedback, "Contains repeated characters")
		score = max(0, score-1)
	}
	if hasCommonPrefix(password) {
		feedback = append(feedback, "Contains common patterns")
		score = max(0, score-1)
	}

	score = min(score, MaxScore)

	switch {
	case score == MaxScore:
		feedback = append(feedback, "Excellent password strength!")
	case score == 3:
		feedback = append(feedback, "Good password, consider adding more characters")
	default:
		feedback = append(feedback, "Use a longer password with mixed character types")
	}

	return models.PasswordStrength{
		Score:    score,
		Label:    strengthLevels[score].label,
		Color:    strengthLevels[score].color,
		Feedback: feedback,
	}
}

// ContainsCommonWords reports whether password contains a dictionary word
// frequently found in leaked passwords, case-insensitively.
func ContainsCommonWords(password string) bool {
	lower := strings.ToLower(password)
	for _, w := range commonWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// EstimateCharsetSize sums the alphabet sizes of the character classes
// present in password. Characters outside every class add nothing.
func EstimateCharsetSize(password string) int {
	upper, lower, digit, symbol := classesOf(password)

	size := 0
	if upper {
		size += len(Uppercase)
	}
	if lower {
		size += len(Lowercase)
	}
	if digit {
		size += len(Numbers)
	}
	if symbol {
		size += len(Symbols)
	}
	return size
}

func classesOf(password string) (upper, lower, digit, symbol bool) {
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(Symbols, r):
			symbol = true
		}
	}
	return upper, lower, digit, symbol
}

func classCount(password string) int {
	upper, lower, digit, symbol := classesOf(password)

	n := 0
	for _, present := range []bool{upper, lower, digit, symbol} {
		if present {
			n++
		}
	}
	return n
}

func hasRepeatedRun(password string, run int) bool {
	var (
		prev  rune
		count int
	)

	for i, r := range []rune(password) {
		if i > 0 && r == prev {
			count++
		} else {
			count = 1
		}
		if count >= run {
			return true
		}
		prev = r
	}
	return false
}

func hasCommonPrefix(password string) bool {
	lower := strings.ToLower(password)
	for _, p := range commonPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
