package controllers

import (
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anvaymayekar/sira-console/config"
	"github.com/anvaymayekar/sira-console/internal/envfile"
)

// runSettings is the merged view of config file, environment profile, and
// command-line flags that every controller starts from.
type runSettings struct {
	ProjectDir string
	Cfg        *config.Config
}

// resolveSettings loads the configuration (explicit --config, auto-detected
// file, or defaults) and applies flag overrides. The project directory is
// the optional positional argument, defaulting to the current directory the
// way the original scripts did.
func resolveSettings(cmd *cobra.Command, args []string) *runSettings {
	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	if configPath == "" {
		if found, err := config.FindConfigFile(); err == nil {
			configPath = found
		}
	}

	if configPath == "" {
		cfg = config.Default()
	} else {
		logger.Debugf("Using config file: %s", configPath)
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	if venv, _ := cmd.Flags().GetString("venv"); venv != "" {
		cfg.VenvDir = venv
	}
	if requirements, _ := cmd.Flags().GetString("requirements"); requirements != "" {
		cfg.Requirements = requirements
	}

	return &runSettings{ProjectDir: projectDir, Cfg: cfg}
}

// applyEnvironment overlays a named profile from the environments file onto
// the configuration.
func applyEnvironment(settings *runSettings, envName string) {
	if envName == "" {
		return
	}

	path := resolveEnvFilePath(settings)

	envs, err := envfile.ParseFile(path)
	if err != nil {
		logger.Fatalf("failed to read environments file: %v", err)
	}

	env, lookupErr := envfile.Lookup(envs, envName)
	if lookupErr != nil {
		logger.Fatalf("%v (defined in %s)", lookupErr, path)
	}

	logger.Infof("Using environment profile %q", env.Name)

	if env.Requirements != "" {
		settings.Cfg.Requirements = env.Requirements
	}
	if env.Venv != "" {
		settings.Cfg.VenvDir = env.Venv
	}
	if env.Python != "" {
		settings.Cfg.Python = env.Python
	}
}

func resolveEnvFilePath(settings *runSettings) string {
	path := settings.Cfg.EnvFile
	if path == "" {
		path = envfile.DefaultFileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(settings.ProjectDir, path)
	}
	return path
}
