package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anvaymayekar/sira-console/internal"
	"github.com/anvaymayekar/sira-console/internal/infrastructure/controllers"
)

func buildRootCommand(setupController *controllers.SetupController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "sira-setup [path]",
		Short: "Environment bootstrapper for the SIRA console",
		Long: `Provision the Python environment for the SIRA console.

Replaces the per-platform setup scripts with one tool: it locates a
Python interpreter, creates the virtual environment, upgrades pip,
installs the dependency manifest, and prints follow-up instructions.

Usage modes:
  sira-setup                Bootstrap the current directory
  sira-setup /path/to/repo  Bootstrap a specific checkout
  sira-setup doctor         Diagnose the environment without changing it`,
		Args: cobra.MaximumNArgs(1),
		Run: func(command *cobra.Command, args []string) {
			setupController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("venv", "",
		"Virtual environment directory (overrides config)")
	cmd.PersistentFlags().String("requirements", "",
		"Dependency manifest path (overrides config)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	// The bare invocation runs setup, so it carries the setup flags too
	setupController.AddFlags(cmd)

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		switch c := ctrl.(type) {
		case *controllers.SetupController:
			c.AddFlags(subCmd)
		case *controllers.DoctorController:
			c.AddFlags(subCmd)
		case *controllers.RequirementsController:
			c.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Local .env values feed ${VAR} references in the config file
	_ = godotenv.Load()

	// Inject controllers via DIG
	setupController := injectSetupController()
	cobraRoot := buildRootCommand(setupController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'sira-setup': %s", err)
	}
}
