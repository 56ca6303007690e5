package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/surlink/internal/client/capture"
	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

// TextScanner is the part of Scanner that Capture feeds.
type TextScanner interface {
	Scan(ctx context.Context, message string) (*models.ScanResult, error)
}

// Capture turns camera frames and image files into text and scans it.
type Capture struct {
	camera  capture.Camera
	ocr     capture.OCR
	scanner TextScanner
	log     logging.Logger

	mu      sync.Mutex
	facing  capture.Facing
	running bool
}

func NewCapture(camera capture.Camera, ocr capture.OCR, scanner TextScanner, log logging.Logger) *Capture {
	return &Capture{camera: camera, ocr: ocr, scanner: scanner, log: log, facing: capture.FacingFront}
}

func (c *Capture) Facing() capture.Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

// Open starts the camera with the current facing.
func (c *Capture) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(ctx)
}

func (c *Capture) startLocked(ctx context.Context) error {
	if c.running {
		c.camera.Stop()
		c.running = false
	}
	if err := c.camera.Start(ctx, c.facing); err != nil {
		c.log.Warn(ctx, "camera start failed", "facing", c.facing.String(), "error", err)
		return err
	}
	c.running = true
	return nil
}

// Flip toggles front/back. A running camera is restarted on the new side.
func (c *Capture) Flip(ctx context.Context) (capture.Facing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.facing = c.facing.Toggled()
	if !c.running {
		return c.facing, nil
	}
	return c.facing, c.startLocked(ctx)
}

// Close stops the camera if it is running.
func (c *Capture) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		c.camera.Stop()
		c.running = false
	}
}

// CaptureText takes one frame, stops the camera and runs OCR on the frame.
// The camera is started first if needed.
func (c *Capture) CaptureText(ctx context.Context) (string, error) {
	c.mu.Lock()
	if !c.running {
		if err := c.startLocked(ctx); err != nil {
			c.mu.Unlock()
			return "", err
		}
	}
	frame, err := c.camera.Snapshot(ctx)
	c.camera.Stop()
	c.running = false
	c.mu.Unlock()

	if err != nil {
		return "", err
	}
	return c.recognize(ctx, frame)
}

// FileText runs OCR over an image file.
func (c *Capture) FileText(ctx context.Context, path string) (string, error) {
	img, err := LoadImage(path, MaxOCRImageSize)
	if err != nil {
		return "", err
	}
	return c.recognize(ctx, img.Data)
}

func (c *Capture) recognize(ctx context.Context, image []byte) (string, error) {
	text, err := c.ocr.Recognize(ctx, image)
	if err != nil {
		c.log.Warn(ctx, "ocr failed", "error", err)
		return "", fmt.Errorf("%w: %v", capture.ErrOCRFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", capture.ErrNoText
	}
	return text, nil
}

// ScanCamera captures text from the camera and scans it.
func (c *Capture) ScanCamera(ctx context.Context) (string, *models.ScanResult, error) {
	text, err := c.CaptureText(ctx)
	if err != nil {
		return "", nil, err
	}
	res, err := c.scanner.Scan(ctx, text)
	return text, res, err
}

// ScanFile extracts text from an image file and scans it.
func (c *Capture) ScanFile(ctx context.Context, path string) (string, *models.ScanResult, error) {
	text, err := c.FileText(ctx, path)
	if err != nil {
		return "", nil, err
	}
	res, err := c.scanner.Scan(ctx, text)
	return text, res, err
}
