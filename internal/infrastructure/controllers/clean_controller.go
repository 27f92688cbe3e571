package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anvaymayekar/sira-console/internal/domain/commands"
	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// CleanController handles removal of the virtual environment.
type CleanController struct {
	command commands.Clean
}

// NewCleanController creates a new CleanController.
func NewCleanController(command commands.Clean) *CleanController {
	return &CleanController{command: command}
}

// GetBind returns the Cobra command metadata for the clean controller.
func (it *CleanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clean [path]",
		Short: "Remove the virtual environment",
		Long: `Remove the virtual environment directory.
Refuses to delete a directory that does not look like a virtual environment.`,
	}
}

// Execute removes the environment.
func (it *CleanController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings := resolveSettings(cmd, args)

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if err := it.command.Execute(ctx, commands.CleanOptions{
		ProjectDir: settings.ProjectDir,
		VenvDir:    settings.Cfg.VenvDir,
		DryRun:     dryRun,
	}); err != nil {
		logger.Fatalf("Clean failed: %v", err)
	}
}
