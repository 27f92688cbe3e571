// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
	"github.com/anvaymayekar/sira-console/internal/domain/repositories"
)

// ---------------------------------------------------------------------------
// SpyLocator
// ---------------------------------------------------------------------------

// SpyLocator implements repositories.InterpreterLocator as a configurable spy.
type SpyLocator struct {
	Interpreter entities.Interpreter
	LocateErr   error
	// spy: overrides that were requested
	Overrides []string
}

var _ repositories.InterpreterLocator = (*SpyLocator)(nil)

func (l *SpyLocator) Locate(_ context.Context, override string) (entities.Interpreter, error) {
	l.Overrides = append(l.Overrides, override)
	return l.Interpreter, l.LocateErr
}

// ---------------------------------------------------------------------------
// SpyEnvironments
// ---------------------------------------------------------------------------

// CreateCall records a single invocation of Create.
type CreateCall struct {
	Interpreter entities.Interpreter
	Dir         string
	Recreate    bool
}

// SpyEnvironments implements repositories.EnvironmentRepository as a
// configurable spy.
type SpyEnvironments struct {
	Environment entities.Environment
	CreateErr   error
	InspectErr  error
	RemoveErr   error
	Hint        string

	// spy: inputs received
	CreateCalls  []CreateCall
	InspectDirs  []string
	RemovedDirs  []string
	HintRequests int
}

var _ repositories.EnvironmentRepository = (*SpyEnvironments)(nil)

func (e *SpyEnvironments) Create(
	_ context.Context,
	interp entities.Interpreter,
	dir string,
	recreate bool,
) (entities.Environment, error) {
	e.CreateCalls = append(e.CreateCalls, CreateCall{Interpreter: interp, Dir: dir, Recreate: recreate})
	return e.Environment, e.CreateErr
}

func (e *SpyEnvironments) Inspect(dir string) (entities.Environment, error) {
	e.InspectDirs = append(e.InspectDirs, dir)
	if e.InspectErr != nil {
		return entities.Environment{}, e.InspectErr
	}
	return e.Environment, nil
}

func (e *SpyEnvironments) Remove(dir string) error {
	e.RemovedDirs = append(e.RemovedDirs, dir)
	return e.RemoveErr
}

func (e *SpyEnvironments) ActivationHint(_ entities.Environment) string {
	e.HintRequests++
	if e.Hint != "" {
		return e.Hint
	}
	return "source .venv/bin/activate"
}

// ---------------------------------------------------------------------------
// SpyInstaller
// ---------------------------------------------------------------------------

// InstallCall records a single invocation of Install.
type InstallCall struct {
	Env          entities.Environment
	ManifestPath string
	Opts         repositories.InstallOptions
}

// SpyInstaller implements repositories.PackageInstaller as a configurable spy.
type SpyInstaller struct {
	UpgradeOutput string
	UpgradeErr    error
	InstallOutput string
	InstallErr    error
	Outdated      []entities.OutdatedPackage
	OutdatedErr   error

	// spy: inputs received
	UpgradedEnvs []entities.Environment
	InstallCalls []InstallCall
	ListedEnvs   []entities.Environment
}

var _ repositories.PackageInstaller = (*SpyInstaller)(nil)

func (i *SpyInstaller) UpgradeTooling(
	_ context.Context,
	env entities.Environment,
) (string, error) {
	i.UpgradedEnvs = append(i.UpgradedEnvs, env)
	return i.UpgradeOutput, i.UpgradeErr
}

func (i *SpyInstaller) Install(
	_ context.Context,
	env entities.Environment,
	manifestPath string,
	opts repositories.InstallOptions,
) (string, error) {
	i.InstallCalls = append(i.InstallCalls, InstallCall{
		Env: env, ManifestPath: manifestPath, Opts: opts,
	})
	return i.InstallOutput, i.InstallErr
}

func (i *SpyInstaller) ListOutdated(
	_ context.Context,
	env entities.Environment,
) ([]entities.OutdatedPackage, error) {
	i.ListedEnvs = append(i.ListedEnvs, env)
	return i.Outdated, i.OutdatedErr
}

// ---------------------------------------------------------------------------
// StubReleases
// ---------------------------------------------------------------------------

// StubReleases implements repositories.ReleaseRepository with canned versions.
type StubReleases struct {
	Versions map[string]string // package name -> latest version
	Err      error
	// spy: names that were looked up
	Lookups []string
}

var _ repositories.ReleaseRepository = (*StubReleases)(nil)

func (r *StubReleases) LatestVersion(_ context.Context, name string) (string, error) {
	r.Lookups = append(r.Lookups, name)
	if r.Err != nil {
		return "", r.Err
	}
	return r.Versions[name], nil
}

// ---------------------------------------------------------------------------
// StubSnapshots
// ---------------------------------------------------------------------------

// StubSnapshots implements repositories.SnapshotRepository with a canned
// snapshot.
type StubSnapshots struct {
	Result entities.Snapshot
	Err    error
}

var _ repositories.SnapshotRepository = (*StubSnapshots)(nil)

func (s *StubSnapshots) Snapshot(_ string) (entities.Snapshot, error) {
	return s.Result, s.Err
}
