package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/client/services"
)

// Scan classifies the text given on the command line, or prompts for a
// multi-line message when none was given.
func (a *App) Scan(ctx context.Context, text string) error {
	msg := text
	if strings.TrimSpace(msg) == "" {
		var err error
		msg, err = GetMultiline(a.reader, "Paste the message to check", a.out)
		if err != nil {
			return err
		}
	}

	res, err := a.scanner.Scan(ctx, msg)
	return a.showScan(res, err)
}

// showScan prints the verdict bubble, or the connection error bubble when
// the classifier could not be reached.
func (a *App) showScan(res *models.ScanResult, err error) error {
	switch {
	case err == nil:
		a.println(a.renderer.Result(res))
		return nil
	case errors.Is(err, services.ErrEmptyMessage):
		return nil
	case errors.Is(err, services.ErrConnection):
		a.println(a.renderer.ConnectionError())
		return nil
	default:
		return err
	}
}

// Camera opens the active camera, takes a frame, reads its text and scans it.
// The camera is closed again once the frame is taken.
func (a *App) Camera(ctx context.Context) error {
	if err := a.capture.Open(ctx); err != nil {
		return err
	}
	a.println("Capturing from the " + a.capture.Facing().String() + " camera...")

	_, res, err := a.capture.ScanCamera(ctx)
	return a.showScan(res, err)
}

func (a *App) Flip(ctx context.Context) error {
	facing, err := a.capture.Flip(ctx)
	if err != nil {
		return err
	}
	a.println("Switched to the " + facing.String() + " camera.")
	return nil
}

// OCR reads the text of an image file and scans it.
func (a *App) OCR(ctx context.Context, path string) error {
	if path == "" {
		var err error
		if path, err = GetSimpleText(a.reader, "Image path", a.out); err != nil {
			return err
		}
	}
	if path == "" {
		return services.ErrNotImage
	}

	_, res, err := a.capture.ScanFile(ctx, path)
	return a.showScan(res, err)
}
