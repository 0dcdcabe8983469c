package domain

import "github.com/pkg/errors"

var (
	// ErrSourceNotFound input price file does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrDataInsufficient source holds fewer rows than the requested window.
	ErrDataInsufficient = errors.New("not enough data")
	// ErrEmptyWindow nothing to extend.
	ErrEmptyWindow = errors.New("window is empty")
	// ErrMalformedRow a row has an unparseable date or price or the wrong column count.
	ErrMalformedRow = errors.New("malformed row")
	// ErrInvalidWindowSize window size is not positive.
	ErrInvalidWindowSize = errors.New("window size must be positive")
)
