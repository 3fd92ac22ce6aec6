package utils

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidInput is wrapped by every ValidateInput failure.
var ErrInvalidInput = errors.New("invalid input")

// ValidateInput checks switcher input before it is parsed. Input must be
// valid UTF-8, at most maxRunes runes long (0 disables the limit) and free of
// control characters other than tab.
func ValidateInput(s string, maxRunes int) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidInput)
	}
	if maxRunes > 0 {
		if n := utf8.RuneCountInString(s); n > maxRunes {
			return fmt.Errorf("%w: %d characters, limit is %d", ErrInvalidInput, n, maxRunes)
		}
	}
	for i, r := range s {
		if r != '\t' && unicode.IsControl(r) {
			return fmt.Errorf("%w: control character %U at %d", ErrInvalidInput, r, i)
		}
	}
	return nil
}
