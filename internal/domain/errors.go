package domain

import "errors"

// Domain errors
var (
	ErrInvalidFile          = errors.New("invalid file")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrModelUnavailable     = errors.New("model returned no content")
)
