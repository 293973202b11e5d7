package app

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrResourceNotFound = errors.New("resource not found")
	ErrExtractFailed    = errors.New("text extraction failed")
)
