package capture

import (
	"context"
	"fmt"
)

type OCR interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TesseractOCR pipes images through the tesseract CLI.
type TesseractOCR struct {
	path     string
	language string
}

func NewTesseractOCR(path, language string) *TesseractOCR {
	if language == "" {
		language = "eng"
	}
	return &TesseractOCR{path: path, language: language}
}

// Recognize returns the raw recognized text. Blank output is not an error here.
func (o *TesseractOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	out, err := runCommand(ctx, o.path, []string{"stdin", "stdout", "-l", o.language}, image)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}
	return string(out), nil
}
