package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxLineSize is the longest message line accepted, in bytes.
	DefaultMaxLineSize = 4096
	// EnvMaxLineSize overrides DefaultMaxLineSize for DefaultSanitizer.
	EnvMaxLineSize = "WAYPOINT_MAX_LINE_SIZE"
)

var (
	ErrLineTooLong = errors.New("line exceeds maximum size")
	ErrInvalidUTF8 = errors.New("line contains invalid UTF-8")
)

// Sanitizer cleans input lines before they become messages.
type Sanitizer struct {
	// MaxSize bounds a line in bytes. Zero disables the check.
	MaxSize int
	// KeepTabs leaves tab characters in place; other control characters
	// are always removed.
	KeepTabs bool
}

// DefaultSanitizer keeps tabs and reads its limit from EnvMaxLineSize,
// falling back to DefaultMaxLineSize.
func DefaultSanitizer() Sanitizer {
	size := DefaultMaxLineSize
	if val := os.Getenv(EnvMaxLineSize); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			size = n
		}
	}
	return Sanitizer{MaxSize: size, KeepTabs: true}
}

// Clean validates line and strips control characters and a leading byte
// order mark. Escape sequences lose their ESC byte, so a terminal color
// code cannot be mistaken for part of a message.
func (s Sanitizer) Clean(line string) (string, error) {
	if s.MaxSize > 0 && len(line) > s.MaxSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrLineTooLong, len(line), s.MaxSize)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	line = strings.TrimPrefix(line, "\ufeff")

	drop := func(r rune) bool {
		return unicode.IsControl(r) && !(s.KeepTabs && r == '\t')
	}
	if strings.IndexFunc(line, drop) < 0 {
		return line, nil
	}
	return strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, line), nil
}
