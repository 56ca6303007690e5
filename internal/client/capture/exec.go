package capture

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var (
	lookPath = exec.LookPath

	// runCommand runs name with args, feeding stdin and returning stdout.
	runCommand = func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
		cmd := exec.CommandContext(ctx, name, args...)
		if stdin != nil {
			cmd.Stdin = bytes.NewReader(stdin)
		}
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
			}
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return stdout.Bytes(), nil
	}
)
