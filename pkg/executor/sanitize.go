package executor

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxTapeSize is 4KB (conservative default)
	DefaultMaxTapeSize = 4096
	// EnvMaxTapeSize is the environment variable to override the default
	EnvMaxTapeSize = "TURING_MAX_TAPE_SIZE"
)

var (
	ErrTapeTooLarge = errors.New("tape exceeds maximum allowed size")
	ErrInvalidUTF8  = errors.New("tape contains invalid UTF-8 sequences")
	ErrControlChar  = errors.New("tape contains control characters")
)

// SanitizeTape checks request input before it becomes tape symbols: it enforces a
// size limit, requires valid UTF-8, and rejects control characters.
// Input is rejected rather than cleaned, since a silently altered tape would run a
// different computation.
func SanitizeTape(input string) error {
	limit := getMaxTapeSize()
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrTapeTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}

	// ANSI codes (ESC), NULL, BEL, etc. would poison logs and traces.
	for i, r := range input {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %U at byte %d", ErrControlChar, r, i)
		}
	}
	return nil
}

func getMaxTapeSize() int {
	if val := os.Getenv(EnvMaxTapeSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTapeSize
}
