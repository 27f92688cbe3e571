package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
	"github.com/anvaymayekar/sira-console/internal/domain/repositories"
	"github.com/anvaymayekar/sira-console/internal/manifest"
)

// Doctor is the interface for the doctor command.
type Doctor interface {
	Execute(ctx context.Context, opts DoctorOptions) []entities.Check
}

// DoctorOptions holds runtime options for a diagnosis run.
type DoctorOptions struct {
	ProjectDir       string
	VenvDir          string
	Requirements     string
	PythonOverride   string
	PythonConstraint string
	CheckOutdated    bool // Also ask pip for outdated installed packages
}

// DoctorCommand diagnoses the development environment without changing it:
// interpreter, virtual environment, manifest, pinned releases, and the
// checkout state.
type DoctorCommand struct {
	locator      repositories.InterpreterLocator
	environments repositories.EnvironmentRepository
	installer    repositories.PackageInstaller
	releases     repositories.ReleaseRepository
	snapshots    repositories.SnapshotRepository
}

// NewDoctorCommand creates a new DoctorCommand.
func NewDoctorCommand(
	locator repositories.InterpreterLocator,
	environments repositories.EnvironmentRepository,
	installer repositories.PackageInstaller,
	releases repositories.ReleaseRepository,
	snapshots repositories.SnapshotRepository,
) *DoctorCommand {
	return &DoctorCommand{
		locator:      locator,
		environments: environments,
		installer:    installer,
		releases:     releases,
		snapshots:    snapshots,
	}
}

// Execute runs every check and returns the results. Checks never abort the
// run; each failure is reported in its own result.
func (it *DoctorCommand) Execute(ctx context.Context, opts DoctorOptions) []entities.Check {
	projectDir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return []entities.Check{{
			Name: "project", Status: entities.CheckFail, Detail: fmt.Sprintf("invalid path: %v", err),
		}}
	}

	venvDir := resolvePath(projectDir, opts.VenvDir)
	manifestPath := resolvePath(projectDir, opts.Requirements)

	var checks []entities.Check

	checks = append(checks, it.checkInterpreter(ctx, opts)...)
	checks = append(checks, it.checkEnvironment(ctx, venvDir, opts.CheckOutdated)...)
	checks = append(checks, it.checkManifest(ctx, manifestPath)...)
	checks = append(checks, it.checkCheckout(projectDir))

	return checks
}

func (it *DoctorCommand) checkInterpreter(ctx context.Context, opts DoctorOptions) []entities.Check {
	interp, err := it.locator.Locate(ctx, opts.PythonOverride)
	if err != nil {
		return []entities.Check{{
			Name: "interpreter", Status: entities.CheckFail, Detail: err.Error(),
		}}
	}

	check := entities.Check{
		Name:   "interpreter",
		Status: entities.CheckOK,
		Detail: fmt.Sprintf("Python %s at %s", interp.Version, interp.Path),
	}

	ok, constraintErr := manifest.SatisfiesConstraints(interp.Version, opts.PythonConstraint)
	if constraintErr != nil {
		check.Status = entities.CheckWarn
		check.Detail += fmt.Sprintf(" (constraint not checked: %v)", constraintErr)
	} else if !ok {
		check.Status = entities.CheckFail
		check.Detail = fmt.Sprintf(
			"Python %s does not satisfy %q", interp.Version, opts.PythonConstraint,
		)
	}

	return []entities.Check{check}
}

func (it *DoctorCommand) checkEnvironment(
	ctx context.Context,
	venvDir string,
	checkOutdated bool,
) []entities.Check {
	env, err := it.environments.Inspect(venvDir)
	if err != nil {
		return []entities.Check{{
			Name:   "virtualenv",
			Status: entities.CheckFail,
			Detail: fmt.Sprintf("no usable environment at %s, run sira-setup first", venvDir),
		}}
	}

	checks := []entities.Check{{
		Name:   "virtualenv",
		Status: entities.CheckOK,
		Detail: fmt.Sprintf("%s (Python %s)", env.Dir, env.PyVersion),
	}}

	if !checkOutdated {
		return checks
	}

	outdated, listErr := it.installer.ListOutdated(ctx, env)
	switch {
	case listErr != nil:
		checks = append(checks, entities.Check{
			Name: "packages", Status: entities.CheckWarn,
			Detail: fmt.Sprintf("could not list outdated packages: %v", listErr),
		})
	case len(outdated) == 0:
		checks = append(checks, entities.Check{
			Name: "packages", Status: entities.CheckOK, Detail: "all installed packages up to date",
		})
	default:
		var names []string
		for _, pkg := range outdated {
			names = append(names, fmt.Sprintf("%s %s -> %s", pkg.Name, pkg.Current, pkg.Latest))
		}
		checks = append(checks, entities.Check{
			Name: "packages", Status: entities.CheckWarn,
			Detail: fmt.Sprintf("%d outdated: %s", len(outdated), strings.Join(names, ", ")),
		})
	}

	return checks
}

func (it *DoctorCommand) checkManifest(ctx context.Context, manifestPath string) []entities.Check {
	m, err := manifest.Parse(manifestPath)
	if err != nil {
		return []entities.Check{{
			Name: "manifest", Status: entities.CheckFail, Detail: err.Error(),
		}}
	}

	checks := []entities.Check{{
		Name:   "manifest",
		Status: entities.CheckOK,
		Detail: fmt.Sprintf("%d requirement(s) in %s", len(m.Requirements), manifestPath),
	}}

	if dupes := manifest.Duplicates(m); len(dupes) > 0 {
		checks = append(checks, entities.Check{
			Name: "manifest", Status: entities.CheckWarn,
			Detail: "duplicate requirements: " + strings.Join(dupes, ", "),
		})
	}

	checks = append(checks, it.checkPinnedReleases(ctx, m)...)

	return checks
}

// checkPinnedReleases compares exact pins against the latest release on the
// index. Lookup failures are soft: the index may be unreachable and the
// environment still perfectly usable.
func (it *DoctorCommand) checkPinnedReleases(ctx context.Context, m *manifest.Manifest) []entities.Check {
	var stale []string

	for _, req := range m.Requirements {
		pinned := exactPin(req)
		if pinned == "" {
			continue
		}

		latest, err := it.releases.LatestVersion(ctx, req.Name)
		if err != nil {
			logger.Debugf("Release lookup for %q failed: %v", req.Name, err)
			continue
		}

		if manifest.IsNewerVersion(pinned, latest) {
			stale = append(stale, fmt.Sprintf("%s %s -> %s", req.Name, pinned, latest))
		}
	}

	if len(stale) == 0 {
		return nil
	}

	return []entities.Check{{
		Name:   "releases",
		Status: entities.CheckWarn,
		Detail: "newer releases available: " + strings.Join(stale, ", "),
	}}
}

func (it *DoctorCommand) checkCheckout(projectDir string) entities.Check {
	snapshot, err := it.snapshots.Snapshot(projectDir)
	if err != nil {
		return entities.Check{
			Name: "checkout", Status: entities.CheckWarn,
			Detail: fmt.Sprintf("could not read checkout state: %v", err),
		}
	}

	if snapshot.Revision == "" {
		return entities.Check{
			Name: "checkout", Status: entities.CheckOK, Detail: "not inside a Git repository",
		}
	}

	detail := "revision " + snapshot.Revision
	status := entities.CheckOK
	if snapshot.Dirty {
		detail += " with uncommitted changes"
		status = entities.CheckWarn
	}

	return entities.Check{Name: "checkout", Status: status, Detail: detail}
}

// exactPin returns the version of a `==` pin, or "" when the requirement is
// not exactly pinned.
func exactPin(req manifest.Requirement) string {
	if len(req.Constraints) != 1 {
		return ""
	}
	if c := req.Constraints[0]; c.Op == "==" {
		return c.Version
	}
	return ""
}
