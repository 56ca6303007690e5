package services

import "errors"

var (
	ErrScanInProgress     = errors.New("scan already in progress")
	ErrEmptyMessage       = errors.New("empty message")
	ErrConnection         = errors.New("unable to connect to the AI service")
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrEmptyFeedback      = errors.New("please enter your feedback before submitting")
	ErrFileTooLarge       = errors.New("file is too large")
	ErrNotImage           = errors.New("file is not an image")
)
