package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// MaxInputSize bounds any single text field a client sends, in bytes.
const MaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeText rejects oversized or malformed input and strips control characters,
// keeping newlines and tabs. ANSI escapes and NUL bytes never reach logs or the store.
func SanitizeText(input string) (string, error) {
	if len(input) > MaxInputSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), MaxInputSize)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// SanitizeMetadata applies SanitizeText to every field. The first failing field is
// reported as a field error.
func SanitizeMetadata(meta domain.PathMetadata) (domain.PathMetadata, error) {
	fields := []struct {
		name string
		v    *string
	}{
		{"title", &meta.Title},
		{"description", &meta.Description},
		{"language", &meta.Language},
		{"image", &meta.Image},
	}
	for _, f := range fields {
		clean, err := SanitizeText(*f.v)
		if err != nil {
			return meta, &Error{Fields: []FieldError{{Field: f.name, Message: err.Error()}}}
		}
		*f.v = clean
	}
	return meta, nil
}
