package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/anvaymayekar/sira-console/internal/manifest"
)

// Requirements is the interface for the requirements listing command.
type Requirements interface {
	Execute(ctx context.Context, opts RequirementsOptions) (*manifest.Manifest, error)
}

// RequirementsOptions holds runtime options for listing the manifest.
type RequirementsOptions struct {
	ProjectDir   string
	Requirements string
}

// RequirementsCommand parses the dependency manifest and lists every
// requirement it declares.
type RequirementsCommand struct{}

// NewRequirementsCommand creates a new RequirementsCommand.
func NewRequirementsCommand() *RequirementsCommand {
	return &RequirementsCommand{}
}

// Execute parses and lists the manifest.
func (it *RequirementsCommand) Execute(
	_ context.Context,
	opts RequirementsOptions,
) (*manifest.Manifest, error) {
	projectDir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	manifestPath := resolvePath(projectDir, opts.Requirements)

	m, parseErr := manifest.Parse(manifestPath)
	if parseErr != nil {
		return nil, parseErr
	}

	logger.Infof("%s declares %d requirement(s):", manifestPath, len(m.Requirements))
	for _, req := range m.Requirements {
		logger.Infof("  %-40s %s:%d", req.String(), filepath.Base(req.FilePath), req.Line)
	}

	for _, name := range manifest.Duplicates(m) {
		logger.Warnf("Requirement %q appears more than once", name)
	}

	return m, nil
}
