package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/surlink/internal/client/capture"
	"github.com/dmitrijs2005/surlink/internal/client/models"
)

type fakeCamera struct {
	StartErr    error
	SnapshotRet []byte
	SnapshotErr error

	started []capture.Facing
	stops   int
}

func (f *fakeCamera) Start(ctx context.Context, facing capture.Facing) error {
	if f.StartErr != nil {
		return f.StartErr
	}
	f.started = append(f.started, facing)
	return nil
}

func (f *fakeCamera) Snapshot(ctx context.Context) ([]byte, error) {
	return f.SnapshotRet, f.SnapshotErr
}

func (f *fakeCamera) Stop() { f.stops++ }

type fakeOCR struct {
	Text string
	Err  error
	got  []byte
}

func (f *fakeOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	f.got = image
	return f.Text, f.Err
}

type fakeTextScanner struct {
	got []string
}

func (f *fakeTextScanner) Scan(ctx context.Context, message string) (*models.ScanResult, error) {
	f.got = append(f.got, message)
	return &models.ScanResult{Message: message, Label: models.LabelSafe}, nil
}

func TestCapture_CaptureTextFeedsScanner(t *testing.T) {
	cam := &fakeCamera{SnapshotRet: []byte("frame")}
	ocr := &fakeOCR{Text: "  Verify your account now \n"}
	sc := &fakeTextScanner{}
	c := NewCapture(cam, ocr, sc, nopLog())

	text, res, err := c.ScanCamera(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Verify your account now", text)
	assert.Equal(t, []string{"Verify your account now"}, sc.got)
	assert.NotNil(t, res)
	assert.Equal(t, []byte("frame"), ocr.got)
	assert.Equal(t, 1, cam.stops, "camera is stopped after the snapshot")
}

func TestCapture_NoText(t *testing.T) {
	c := NewCapture(&fakeCamera{SnapshotRet: []byte("f")}, &fakeOCR{Text: " \n "}, &fakeTextScanner{}, nopLog())

	_, err := c.CaptureText(context.Background())
	require.ErrorIs(t, err, capture.ErrNoText)
}

func TestCapture_OCRFailure(t *testing.T) {
	sc := &fakeTextScanner{}
	c := NewCapture(&fakeCamera{SnapshotRet: []byte("f")}, &fakeOCR{Err: errors.New("tesseract crashed")}, sc, nopLog())

	_, _, err := c.ScanCamera(context.Background())
	require.ErrorIs(t, err, capture.ErrOCRFailed)
	assert.Empty(t, sc.got)
}

func TestCapture_CameraUnavailable(t *testing.T) {
	cam := &fakeCamera{StartErr: capture.ErrCameraUnavailable}
	c := NewCapture(cam, &fakeOCR{}, &fakeTextScanner{}, nopLog())

	require.ErrorIs(t, c.Open(context.Background()), capture.ErrCameraUnavailable)
	_, err := c.CaptureText(context.Background())
	require.ErrorIs(t, err, capture.ErrCameraUnavailable)
}

func TestCapture_FlipRestartsRunningCamera(t *testing.T) {
	cam := &fakeCamera{}
	c := NewCapture(cam, &fakeOCR{}, &fakeTextScanner{}, nopLog())
	assert.Equal(t, capture.FacingFront, c.Facing())

	f, err := c.Flip(context.Background())
	require.NoError(t, err)
	assert.Equal(t, capture.FacingBack, f)
	assert.Empty(t, cam.started, "closed camera is not started by flip")

	require.NoError(t, c.Open(context.Background()))
	f, err = c.Flip(context.Background())
	require.NoError(t, err)
	assert.Equal(t, capture.FacingFront, f)
	assert.Equal(t, []capture.Facing{capture.FacingBack, capture.FacingFront}, cam.started)
	assert.Equal(t, 1, cam.stops)

	c.Close()
	assert.Equal(t, 2, cam.stops)
}

func TestCapture_FileText(t *testing.T) {
	ocr := &fakeOCR{Text: "Claim your prize"}
	sc := &fakeTextScanner{}
	c := NewCapture(&fakeCamera{}, ocr, sc, nopLog())

	text, _, err := c.ScanFile(context.Background(), writeFile(t, "shot.png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "Claim your prize", text)
	assert.Equal(t, pngBytes, ocr.got)

	_, err = c.FileText(context.Background(), writeFile(t, "notes.txt", []byte("plain text")))
	require.ErrorIs(t, err, ErrNotImage)
}
