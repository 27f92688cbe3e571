package python

import (
	"context"
	"os/exec"
)

// commandRunner is the exec seam used by Pip so tests can capture the
// invocations instead of spawning interpreters.
type commandRunner interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
