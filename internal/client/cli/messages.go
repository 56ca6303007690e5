package cli

import (
	"errors"

	"github.com/dmitrijs2005/surlink/internal/client/capture"
	"github.com/dmitrijs2005/surlink/internal/client/services"
)

// userMessages maps sentinel errors to the text shown to the user.
var userMessages = []struct {
	err error
	msg string
}{
	{services.ErrMissingFields, "Please fill in all fields"},
	{services.ErrInvalidCredentials, "Invalid email or password"},
	{services.ErrAccountExists, "An account with this email already exists."},
	{services.ErrNotLoggedIn, "Please log in first."},
	{services.ErrEmptyFeedback, "Please enter your feedback before submitting."},
	{services.ErrFileTooLarge, "File size too large. Please choose an image under 5MB."},
	{services.ErrNotImage, "Please select a valid image file."},
	{services.ErrScanInProgress, "A scan is already in progress."},
	{services.ErrQuizLocked, "This question is already answered. Type n for the next one."},
	{services.ErrInvalidOption, "Choose an answer between 1 and 4."},
	{capture.ErrCameraUnavailable, "Camera access denied or not available."},
	{capture.ErrNoText, "No readable text found in image."},
	{capture.ErrOCRFailed, "Failed to process image."},
}

func userMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Error: " + err.Error()
}
