package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrNoDraft              = errors.New("no structured draft could be recovered from extraction output")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrReferenceUnavailable = errors.New("gst reference data unavailable")
	ErrInvalidDefaultRate   = errors.New("default gst rate is not a statutory slab")
)
