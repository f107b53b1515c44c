package scanner

import (
	"fmt"
	"strings"

	"github.com/shivam1584818/fb-group-finder-backend/internal/urlhandler"
)

// ValidateTarget rejects identifiers that cannot be searched for.
func ValidateTarget(target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("%w: postUrl required", ErrInvalidInput)
	}
	if _, err := urlhandler.ValidateHTTPURL(target); err != nil {
		return fmt.Errorf("%w: postUrl must be an absolute http(s) URL: %w", ErrInvalidInput, err)
	}
	return nil
}

// FallbackQuery returns the last non-empty slash-separated segment of target,
// or target itself when it has none.
func FallbackQuery(target string) string {
	segments := strings.Split(target, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return target
}
