package exec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrNotInstalled is returned when the binary is not on PATH
var ErrNotInstalled = errors.New("command not installed")

// Run executes name with args under a timeout and returns its combined output
func Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output, fmt.Errorf("%s timed out after %v", name, timeout)
	}
	if err != nil {
		return output, fmt.Errorf("%s failed: %w", name, err)
	}
	return output, nil
}
