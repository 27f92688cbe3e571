package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anvaymayekar/sira-console/internal/domain/commands"
	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// DoctorController handles the environment diagnosis command.
type DoctorController struct {
	command commands.Doctor
}

// NewDoctorController creates a new DoctorController.
func NewDoctorController(command commands.Doctor) *DoctorController {
	return &DoctorController{command: command}
}

// GetBind returns the Cobra command metadata for the doctor controller.
func (it *DoctorController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "doctor [path]",
		Short: "Diagnose the development environment",
		Long: `Diagnose the development environment without changing it.
Checks the interpreter, the virtual environment, the dependency manifest,
pinned releases against the package index, and the checkout state.`,
	}
}

// Execute runs the diagnosis and reports every check.
func (it *DoctorController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings := resolveSettings(cmd, args)

	envName, _ := cmd.Flags().GetString("env")
	applyEnvironment(settings, envName)

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	checkOutdated, _ := cmd.Flags().GetBool("outdated")
	pythonOverride, _ := cmd.Flags().GetString("python")

	checks := it.command.Execute(ctx, commands.DoctorOptions{
		ProjectDir:       settings.ProjectDir,
		VenvDir:          settings.Cfg.VenvDir,
		Requirements:     settings.Cfg.Requirements,
		PythonOverride:   pythonOverride,
		PythonConstraint: settings.Cfg.Python,
		CheckOutdated:    checkOutdated,
	})

	for _, check := range checks {
		switch check.Status {
		case entities.CheckOK:
			logger.Infof("[ok]   %-12s %s", check.Name, check.Detail)
		case entities.CheckWarn:
			logger.Warnf("[warn] %-12s %s", check.Name, check.Detail)
		case entities.CheckFail:
			logger.Errorf("[fail] %-12s %s", check.Name, check.Detail)
		}
	}

	if entities.HasFailure(checks) {
		logger.Fatal("Environment is not ready, see failed checks above")
	}

	logger.Info("Environment is ready")
}

// AddFlags adds the doctor-specific flags to the given Cobra command.
func (it *DoctorController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("outdated", false, "Also ask pip for outdated installed packages")
	cmd.Flags().String("env", "", "Named environment profile from the environments file")
	cmd.Flags().String("python", "", "Explicit path to the Python interpreter")
}
