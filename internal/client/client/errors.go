package client

import "errors"

var (
	ErrUnavailable   = errors.New("service unavailable")
	ErrBadStatus     = errors.New("unexpected response status")
	ErrDecode        = errors.New("malformed response body")
	ErrNotConfigured = errors.New("service url not configured")
)
