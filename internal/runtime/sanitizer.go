package runtime

import (
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "AUTOMATA_MAX_INPUT_SIZE"
)

// SanitizeInput enforces the size limit (in bytes) and rejects invalid UTF-8.
// Unlike free-form text, input is never rewritten: every character is a symbol,
// control characters included.
func SanitizeInput(input string, limit int) error {
	if limit <= 0 {
		limit = MaxInputSize()
	}
	// Reject rather than truncate so the verdict always refers to the whole input.
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", domain.ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return domain.ErrInvalidUTF8
	}
	return nil
}

// MaxInputSize returns the limit from EnvMaxInputSize, or DefaultMaxInputSize.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
