package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
	"github.com/anvaymayekar/sira-console/internal/domain/repositories"
	"github.com/anvaymayekar/sira-console/internal/manifest"
)

// Setup is the interface for the setup command.
type Setup interface {
	Execute(ctx context.Context, opts SetupOptions) (*entities.BootstrapReport, error)
}

// SetupOptions holds runtime options for a bootstrap run.
type SetupOptions struct {
	ProjectDir       string
	VenvDir          string // Relative to ProjectDir unless absolute
	Requirements     string // Relative to ProjectDir unless absolute
	PythonOverride   string // Explicit interpreter path
	PythonConstraint string // e.g. ">=3.8"
	IndexURL         string
	Recreate         bool
	SkipInstall      bool
	DryRun           bool
	Verbose          bool
}

// SetupCommand performs the bootstrap sequence the original setup scripts
// ran: report the interpreter, create the virtual environment, surface the
// activation line, upgrade pip, and install the dependency manifest.
type SetupCommand struct {
	locator      repositories.InterpreterLocator
	environments repositories.EnvironmentRepository
	installer    repositories.PackageInstaller
	snapshots    repositories.SnapshotRepository
}

// NewSetupCommand creates a new SetupCommand.
func NewSetupCommand(
	locator repositories.InterpreterLocator,
	environments repositories.EnvironmentRepository,
	installer repositories.PackageInstaller,
	snapshots repositories.SnapshotRepository,
) *SetupCommand {
	return &SetupCommand{
		locator:      locator,
		environments: environments,
		installer:    installer,
		snapshots:    snapshots,
	}
}

// Execute runs the bootstrap sequence. It aborts at the first failed step
// and returns an error carrying the failing tool's output.
func (it *SetupCommand) Execute(
	ctx context.Context,
	opts SetupOptions,
) (*entities.BootstrapReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	projectDir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	venvDir := resolvePath(projectDir, opts.VenvDir)
	manifestPath := resolvePath(projectDir, opts.Requirements)

	report := &entities.BootstrapReport{}

	// Step 1: locate the interpreter and report its version
	interp, locateErr := it.locator.Locate(ctx, opts.PythonOverride)
	if locateErr != nil {
		return nil, locateErr
	}
	logger.Infof("[1/5] Using Python %s (%s)", interp.Version, interp.Path)
	report.Interpreter = interp

	if constraintErr := checkConstraint(interp, opts.PythonConstraint); constraintErr != nil {
		return nil, constraintErr
	}

	it.inspectManifest(manifestPath)

	if opts.DryRun {
		it.logDryRunPlan(venvDir, manifestPath, opts)
		return report, nil
	}

	// Step 2: create (or reuse) the virtual environment
	logger.Infof("[2/5] Creating virtual environment in %s", venvDir)
	env, createErr := it.environments.Create(ctx, interp, venvDir, opts.Recreate)
	if createErr != nil {
		report.Steps = append(report.Steps, entities.StepResult{Name: "create venv", Err: createErr})
		return report, createErr
	}
	report.Environment = env
	report.Steps = append(report.Steps, entities.StepResult{Name: "create venv"})

	// Step 3: activation cannot cross the process boundary, so the venv's
	// own interpreter is used for the remaining steps and the activation
	// line is surfaced for the user.
	logger.Infof("[3/5] Activate with: %s", it.environments.ActivationHint(env))

	// Step 4: upgrade pip
	logger.Info("[4/5] Upgrading pip")
	upgradeOut, upgradeErr := it.installer.UpgradeTooling(ctx, env)
	report.Steps = append(report.Steps, entities.StepResult{
		Name: "upgrade pip", Output: upgradeOut, Err: upgradeErr,
	})
	if upgradeErr != nil {
		return report, upgradeErr
	}

	// Step 5: install the dependency manifest
	if opts.SkipInstall {
		logger.Info("[5/5] Skipping dependency installation (--skip-install)")
	} else {
		logger.Infof("[5/5] Installing dependencies from %s", manifestPath)
		installOut, installErr := it.installer.Install(ctx, env, manifestPath, repositories.InstallOptions{
			IndexURL: opts.IndexURL,
		})
		report.Steps = append(report.Steps, entities.StepResult{
			Name: "install dependencies", Output: installOut, Err: installErr,
		})
		if installErr != nil {
			return report, installErr
		}
		report.Installed = true
	}

	if snapshot, snapErr := it.snapshots.Snapshot(projectDir); snapErr == nil {
		report.Snapshot = snapshot
		if snapshot.Revision != "" {
			logger.Debugf("Checkout at revision %s (dirty: %v)", snapshot.Revision, snapshot.Dirty)
		}
	} else {
		logger.Warnf("Could not read checkout state: %v", snapErr)
	}

	it.printFollowUp(env)

	return report, nil
}

// inspectManifest parses the manifest for early feedback. Problems are
// warnings only: installation is delegated to pip, whose own error
// reporting stands when the file is missing or malformed.
func (it *SetupCommand) inspectManifest(manifestPath string) {
	if _, statErr := os.Stat(manifestPath); statErr != nil {
		logger.Warnf("Manifest %s not found, the install step will fail", manifestPath)
		return
	}

	m, parseErr := manifest.Parse(manifestPath)
	if parseErr != nil {
		logger.Warnf("Manifest has problems: %v", parseErr)
		return
	}

	logger.Infof("Manifest lists %d requirement(s)", len(m.Requirements))

	for _, name := range manifest.Duplicates(m) {
		logger.Warnf("Requirement %q appears more than once in the manifest", name)
	}
}

func (it *SetupCommand) logDryRunPlan(venvDir, manifestPath string, opts SetupOptions) {
	logger.Infof("[DRY RUN] Would create virtual environment in %s", venvDir)
	logger.Info("[DRY RUN] Would upgrade pip")
	if opts.SkipInstall {
		logger.Info("[DRY RUN] Would skip dependency installation")
	} else {
		logger.Infof("[DRY RUN] Would install dependencies from %s", manifestPath)
	}
}

// printFollowUp mirrors the closing instructions of the original scripts.
func (it *SetupCommand) printFollowUp(env entities.Environment) {
	logger.Info("Setup complete.")
	logger.Infof("Activate the environment with: %s", it.environments.ActivationHint(env))
	logger.Info("Then launch the console with:  python main.py")
}

// checkConstraint verifies the interpreter satisfies the version constraint.
func checkConstraint(interp entities.Interpreter, constraint string) error {
	ok, err := manifest.SatisfiesConstraints(interp.Version, constraint)
	if err != nil {
		return fmt.Errorf("invalid python constraint: %w", err)
	}
	if !ok {
		return fmt.Errorf(
			"Python %s at %s does not satisfy the required constraint %q",
			interp.Version, interp.Path, constraint,
		)
	}
	return nil
}

// resolvePath anchors a relative path at the project directory.
func resolvePath(projectDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}
