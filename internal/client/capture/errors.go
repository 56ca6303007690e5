package capture

import "errors"

var (
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrNoText            = errors.New("no readable text found")
	ErrOCRFailed         = errors.New("ocr failed")
)
