package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anvaymayekar/sira-console/internal/domain/commands"
	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// RequirementsController lists the parsed dependency manifest.
type RequirementsController struct {
	command commands.Requirements
}

// NewRequirementsController creates a new RequirementsController.
func NewRequirementsController(command commands.Requirements) *RequirementsController {
	return &RequirementsController{command: command}
}

// GetBind returns the Cobra command metadata for the requirements controller.
func (it *RequirementsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "requirements [path]",
		Short: "List the parsed dependency manifest",
		Long: `Parse the dependency manifest and list every requirement it
declares, including constraints, extras, markers, and included files.`,
	}
}

// Execute parses and lists the manifest.
func (it *RequirementsController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings := resolveSettings(cmd, args)

	envName, _ := cmd.Flags().GetString("env")
	applyEnvironment(settings, envName)

	if _, err := it.command.Execute(ctx, commands.RequirementsOptions{
		ProjectDir:   settings.ProjectDir,
		Requirements: settings.Cfg.Requirements,
	}); err != nil {
		logger.Fatalf("Failed to parse manifest: %v", err)
	}
}

// AddFlags adds the requirements-specific flags to the given Cobra command.
func (it *RequirementsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("env", "", "Named environment profile from the environments file")
}
