package models

import "errors"

// Fatal pipeline errors. Callers match them with errors.Is.
var (
	ErrSourceNotFound  = errors.New("source not found")
	ErrMalformedSource = errors.New("malformed source")
	ErrSchemaMismatch  = errors.New("schema mismatch")
)
