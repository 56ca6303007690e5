package capture

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// Facing selects which camera is used.
type Facing int

const (
	FacingFront Facing = iota
	FacingBack
)

func (f Facing) String() string {
	if f == FacingBack {
		return "back"
	}
	return "front"
}

// Toggled returns the other facing.
func (f Facing) Toggled() Facing {
	if f == FacingBack {
		return FacingFront
	}
	return FacingBack
}

type Camera interface {
	Start(ctx context.Context, facing Facing) error
	Snapshot(ctx context.Context) ([]byte, error)
	Stop()
}

// FFmpegCamera grabs single PNG frames from V4L2 devices with ffmpeg.
type FFmpegCamera struct {
	ffmpegPath  string
	frontDevice string
	backDevice  string

	mu     sync.Mutex
	device string
}

func NewFFmpegCamera(ffmpegPath, frontDevice, backDevice string) *FFmpegCamera {
	return &FFmpegCamera{
		ffmpegPath:  ffmpegPath,
		frontDevice: frontDevice,
		backDevice:  backDevice,
	}
}

// Start checks that ffmpeg and the device for facing exist and remembers the
// device for later snapshots.
func (c *FFmpegCamera) Start(ctx context.Context, facing Facing) error {
	device := c.frontDevice
	if facing == FacingBack {
		device = c.backDevice
	}

	if _, err := lookPath(c.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	if _, err := os.Stat(device); err != nil {
		return fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}

	c.mu.Lock()
	c.device = device
	c.mu.Unlock()
	return nil
}

func (c *FFmpegCamera) Snapshot(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	device := c.device
	c.mu.Unlock()

	if device == "" {
		return nil, fmt.Errorf("%w: camera not started", ErrCameraUnavailable)
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "v4l2", "-i", device,
		"-frames:v", "1",
		"-f", "image2pipe", "-vcodec", "png", "-",
	}
	frame, err := runCommand(ctx, c.ffmpegPath, args, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	if len(frame) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrCameraUnavailable)
	}
	return frame, nil
}

func (c *FFmpegCamera) Stop() {
	c.mu.Lock()
	c.device = ""
	c.mu.Unlock()
}

// Device returns the device in use, or "" when stopped.
func (c *FFmpegCamera) Device() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}
