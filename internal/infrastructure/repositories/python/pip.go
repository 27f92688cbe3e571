package python

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
	"github.com/anvaymayekar/sira-console/internal/domain/repositories"
)

// Pip drives pip through the environment's own interpreter so the system
// installation is never touched.
type Pip struct {
	runner commandRunner
}

// NewPip creates a new pip-backed package installer.
func NewPip() *Pip {
	return &Pip{runner: execRunner{}}
}

// UpgradeTooling upgrades pip itself inside the environment.
func (it *Pip) UpgradeTooling(ctx context.Context, env entities.Environment) (string, error) {
	return it.run(ctx, env, "install", "--upgrade", "pip")
}

// Install installs every requirement from the manifest file.
func (it *Pip) Install(
	ctx context.Context,
	env entities.Environment,
	manifestPath string,
	opts repositories.InstallOptions,
) (string, error) {
	args := []string{"install", "-r", manifestPath}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	return it.run(ctx, env, args...)
}

// ListOutdated reports installed packages with a newer release available.
func (it *Pip) ListOutdated(
	ctx context.Context,
	env entities.Environment,
) ([]entities.OutdatedPackage, error) {
	output, err := it.run(ctx, env, "list", "--outdated", "--format=json")
	if err != nil {
		return nil, err
	}
	return parseOutdated(output), nil
}

// run executes `python -m pip ARGS...` and returns the combined output.
func (it *Pip) run(ctx context.Context, env entities.Environment, args ...string) (string, error) {
	full := append([]string{"-m", "pip"}, args...)

	logger.Debugf("Running %s -m pip %s", env.PythonPath, strings.Join(args, " "))

	output, err := it.runner.CombinedOutput(ctx, env.PythonPath, full...)
	outputStr := string(output)

	logger.Debugf("pip output:\n%s", outputStr)

	if err != nil {
		return outputStr, fmt.Errorf(
			"pip %s failed: %w\nOutput:\n%s", args[0], err, outputStr,
		)
	}

	return outputStr, nil
}

// parseOutdated extracts packages from `pip list --outdated --format=json`.
// pip sometimes prints upgrade notices before the JSON, so parsing starts at
// the first bracket.
func parseOutdated(output string) []entities.OutdatedPackage {
	start := strings.Index(output, "[")
	if start < 0 {
		return nil
	}

	var outdated []entities.OutdatedPackage
	for _, item := range gjson.Parse(output[start:]).Array() {
		name := item.Get("name").String()
		if name == "" {
			continue
		}
		outdated = append(outdated, entities.OutdatedPackage{
			Name:    name,
			Current: item.Get("version").String(),
			Latest:  item.Get("latest_version").String(),
		})
	}

	return outdated
}
