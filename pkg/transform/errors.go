package transform

import "errors"

// Failure kinds for a single transform. Callers match with errors.Is;
// every error returned by Transform wraps exactly one of these.
var (
	// ErrDecodeFailed means the source could not be opened or parsed
	ErrDecodeFailed = errors.New("decode failed")
	// ErrEncodeFailed means the output codec rejected the image or the
	// write failed
	ErrEncodeFailed = errors.New("encode failed")
	// ErrUnsupportedFormat means the requested output format is unknown
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
