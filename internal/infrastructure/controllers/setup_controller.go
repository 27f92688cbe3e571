package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anvaymayekar/sira-console/internal/domain/commands"
	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// SetupController handles the bootstrap command, which is also what the
// bare root invocation runs.
type SetupController struct {
	command commands.Setup
}

// NewSetupController creates a new SetupController.
func NewSetupController(command commands.Setup) *SetupController {
	return &SetupController{command: command}
}

// GetBind returns the Cobra command metadata for the setup controller.
func (it *SetupController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "setup [path]",
		Short: "Provision the Python environment for the console",
		Long: `Provision the Python environment for the SIRA console.
Locates an interpreter, creates the virtual environment, upgrades pip,
installs the dependency manifest, and prints follow-up instructions.`,
	}
}

// Execute runs the bootstrap sequence.
func (it *SetupController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings := resolveSettings(cmd, args)

	envName, _ := cmd.Flags().GetString("env")
	applyEnvironment(settings, envName)

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	recreate, _ := cmd.Flags().GetBool("recreate")
	skipInstall, _ := cmd.Flags().GetBool("skip-install")
	pythonOverride, _ := cmd.Flags().GetString("python")
	indexURL, _ := cmd.Flags().GetString("index-url")

	if indexURL == "" {
		indexURL = settings.Cfg.IndexURL
	}

	if _, err := it.command.Execute(ctx, commands.SetupOptions{
		ProjectDir:       settings.ProjectDir,
		VenvDir:          settings.Cfg.VenvDir,
		Requirements:     settings.Cfg.Requirements,
		PythonOverride:   pythonOverride,
		PythonConstraint: settings.Cfg.Python,
		IndexURL:         indexURL,
		Recreate:         recreate,
		SkipInstall:      skipInstall,
		DryRun:           dryRun,
		Verbose:          verbose,
	}); err != nil {
		logger.Fatalf("Setup failed: %v", err)
	}
}

// AddFlags adds the setup-specific flags to the given Cobra command.
func (it *SetupController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("recreate", false, "Rebuild the virtual environment from scratch")
	cmd.Flags().Bool("skip-install", false, "Skip the dependency installation step")
	cmd.Flags().String("env", "", "Named environment profile from the environments file")
	cmd.Flags().String("python", "", "Explicit path to the Python interpreter")
	cmd.Flags().String("index-url", "", "Alternative package index URL")
}
