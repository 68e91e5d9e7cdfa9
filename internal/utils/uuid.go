package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers for new records.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, or a random UUIDv4 if the clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsValidUUID reports whether s parses as a UUID.
func IsValidUUID(s string) bool {
	return uuid.Validate(s) == nil
}

// MaxTraceIDLength bounds a trace ID accepted from a client.
const MaxTraceIDLength = 128

// TraceID returns incoming when it is a safe trace ID and a fresh UUID
// otherwise. A safe ID is non-empty, at most [MaxTraceIDLength] bytes and made
// of letters, digits and any of "-_.:".
func TraceID(incoming string) string {
	if isSafeTraceID(incoming) {
		return incoming
	}
	return uuid.NewString()
}

func isSafeTraceID(s string) bool {
	if s == "" || len(s) > MaxTraceIDLength {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}
