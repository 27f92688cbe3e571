package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/anvaymayekar/sira-console/internal/domain/repositories"
)

// Clean is the interface for the clean command.
type Clean interface {
	Execute(ctx context.Context, opts CleanOptions) error
}

// CleanOptions holds runtime options for removing the environment.
type CleanOptions struct {
	ProjectDir string
	VenvDir    string
	DryRun     bool
}

// CleanCommand removes the virtual environment directory.
type CleanCommand struct {
	environments repositories.EnvironmentRepository
}

// NewCleanCommand creates a new CleanCommand.
func NewCleanCommand(environments repositories.EnvironmentRepository) *CleanCommand {
	return &CleanCommand{environments: environments}
}

// Execute removes the environment. The repository refuses directories that
// do not look like virtual environments.
func (it *CleanCommand) Execute(_ context.Context, opts CleanOptions) error {
	projectDir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	venvDir := resolvePath(projectDir, opts.VenvDir)

	if opts.DryRun {
		logger.Infof("[DRY RUN] Would remove virtual environment at %s", venvDir)
		return nil
	}

	if removeErr := it.environments.Remove(venvDir); removeErr != nil {
		return removeErr
	}

	logger.Infof("Removed virtual environment at %s", venvDir)
	return nil
}
