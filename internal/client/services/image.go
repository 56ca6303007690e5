package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxProfilePictureSize is the upper bound for avatar files (5 MiB).
	MaxProfilePictureSize = 5 << 20
	// MaxOCRImageSize bounds images passed to OCR.
	MaxOCRImageSize = 20 << 20
)

// Image is a validated image file.
type Image struct {
	Data []byte
	MIME string
}

// DataURI renders the image as an inline data: URI.
func (i *Image) DataURI() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// LoadImage reads path, rejecting files over maxSize bytes and files whose
// detected type is not image/*.
func LoadImage(path string, maxSize int64) (*Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrFileTooLarge, fi.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	// drop parameters such as charset that some detectors append
	mime, _, _ := strings.Cut(mt.String(), ";")
	return &Image{Data: data, MIME: mime}, nil
}
