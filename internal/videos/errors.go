package videos

import "errors"

var (
	// ErrProviderUnavailable indicates the metadata provider is not configured.
	ErrProviderUnavailable = errors.New("video metadata provider unavailable")
	// ErrInvalidURL indicates the input does not match any supported YouTube URL shape.
	ErrInvalidURL = errors.New("invalid YouTube URL")
	// ErrVideoNotFound indicates the hosting platform has no video with the requested identifier.
	ErrVideoNotFound = errors.New("video not found")
)
