package urlhandler

import "errors"

var (
	// ErrEmptyURL is returned for empty or whitespace-only input
	ErrEmptyURL = errors.New("URL is empty or only whitespace")
	// ErrRelativeURL is returned when an absolute URL is required
	ErrRelativeURL = errors.New("URL is not absolute")
	// ErrUnsupportedScheme is returned for schemes other than http and https
	ErrUnsupportedScheme = errors.New("URL scheme must be http or https")
)
