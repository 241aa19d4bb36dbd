package biz

import "errors"

var (
	// ErrEncoding is returned when the embedding backend cannot encode
	// a query or utterance.
	ErrEncoding = errors.New("failed to encode text")

	// ErrNoQueryFound is returned when the model response contains no
	// SQL sentinel block.
	ErrNoQueryFound = errors.New("no sql query found in model response")
)
