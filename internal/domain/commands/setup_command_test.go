package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvaymayekar/sira-console/internal/domain/commands"
	"github.com/anvaymayekar/sira-console/internal/domain/entities"
	testdoubles "github.com/anvaymayekar/sira-console/test"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "requirements.txt"),
		[]byte("PyQt6==6.4.2\nnumpy>=1.24\n"),
		0o600,
	))
	return dir
}

func defaultOptions(projectDir string) commands.SetupOptions {
	return commands.SetupOptions{
		ProjectDir:       projectDir,
		VenvDir:          ".venv",
		Requirements:     "requirements.txt",
		PythonConstraint: ">=3.8",
	}
}

func TestSetupCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should run every bootstrap step in order", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := writeProject(t)
		locator := &testdoubles.SpyLocator{
			Interpreter: entities.Interpreter{Path: "/usr/bin/python3", Version: "3.12.1"},
		}
		environments := &testdoubles.SpyEnvironments{
			Environment: entities.Environment{Dir: filepath.Join(projectDir, ".venv")},
		}
		installer := &testdoubles.SpyInstaller{}
		snapshots := &testdoubles.StubSnapshots{Result: entities.Snapshot{Revision: "abc12345"}}
		cmd := commands.NewSetupCommand(locator, environments, installer, snapshots)

		// when
		report, err := cmd.Execute(ctx, defaultOptions(projectDir))

		// then
		require.NoError(t, err)
		require.Len(t, environments.CreateCalls, 1)
		assert.Equal(t, filepath.Join(projectDir, ".venv"), environments.CreateCalls[0].Dir)
		assert.False(t, environments.CreateCalls[0].Recreate)
		require.Len(t, installer.UpgradedEnvs, 1)
		require.Len(t, installer.InstallCalls, 1)
		assert.Equal(t,
			filepath.Join(projectDir, "requirements.txt"),
			installer.InstallCalls[0].ManifestPath,
		)
		assert.True(t, report.Installed)
		assert.Equal(t, "abc12345", report.Snapshot.Revision)
	})

	t.Run("should perform nothing in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := writeProject(t)
		locator := &testdoubles.SpyLocator{
			Interpreter: entities.Interpreter{Path: "/usr/bin/python3", Version: "3.12.1"},
		}
		environments := &testdoubles.SpyEnvironments{}
		installer := &testdoubles.SpyInstaller{}
		cmd := commands.NewSetupCommand(locator, environments, installer, &testdoubles.StubSnapshots{})

		opts := defaultOptions(projectDir)
		opts.DryRun = true

		// when
		report, err := cmd.Execute(ctx, opts)

		// then
		require.NoError(t, err)
		assert.Empty(t, environments.CreateCalls)
		assert.Empty(t, installer.UpgradedEnvs)
		assert.Empty(t, installer.InstallCalls)
		assert.False(t, report.Installed)
	})

	t.Run("should fail when no interpreter is found", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := writeProject(t)
		locator := &testdoubles.SpyLocator{LocateErr: errors.New("no Python interpreter found")}
		environments := &testdoubles.SpyEnvironments{}
		cmd := commands.NewSetupCommand(
			locator, environments, &testdoubles.SpyInstaller{}, &testdoubles.StubSnapshots{},
		)

		// when
		_, err := cmd.Execute(ctx, defaultOptions(projectDir))

		// then
		require.Error(t, err)
		assert.Empty(t, environments.CreateCalls)
	})

	t.Run("should reject an interpreter below the constraint", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := writeProject(t)
		locator := &testdoubles.SpyLocator{
			Interpreter: entities.Interpreter{Path: "/usr/bin/python3", Version: "3.7.9"},
		}
		environments := &testdoubles.SpyEnvironments{}
		cmd := commands.NewSetupCommand(
			locator, environments, &testdoubles.SpyInstaller{}, &testdoubles.StubSnapshots{},
		)

		// when
		_, err := cmd.Execute(ctx, defaultOptions(projectDir))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3.7.9")
		assert.Empty(t, environments.CreateCalls)
	})

	t.Run("should abort before installing when the pip upgrade fails", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := writeProject(t)
		locator := &testdoubles.SpyLocator{
			Interpreter: entities.Interpreter{Path: "/usr/bin/python3", Version: "3.12.1"},
		}
		installer := &testdoubles.SpyInstaller{UpgradeErr: errors.New("network unreachable")}
		cmd := commands.NewSetupCommand(
			locator, &testdoubles.SpyEnvironments{}, installer, &testdoubles.StubSnapshots{},
		)

		// when
		report, err := cmd.Execute(ctx, defaultOptions(projectDir))

		// then
		require.Error(t, err)
		assert.Empty(t, installer.InstallCalls)
		require.NotNil(t, report)
		assert.False(t, report.Installed)
	})

	t.Run("should pass recreate and index URL through", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := writeProject(t)
		locator := &testdoubles.SpyLocator{
			Interpreter: entities.Interpreter{Path: "/usr/bin/python3", Version: "3.12.1"},
		}
		environments := &testdoubles.SpyEnvironments{}
		installer := &testdoubles.SpyInstaller{}
		cmd := commands.NewSetupCommand(locator, environments, installer, &testdoubles.StubSnapshots{})

		opts := defaultOptions(projectDir)
		opts.Recreate = true
		opts.IndexURL = "https://pypi.example.com/simple"

		// when
		_, err := cmd.Execute(ctx, opts)

		// then
		require.NoError(t, err)
		require.Len(t, environments.CreateCalls, 1)
		assert.True(t, environments.CreateCalls[0].Recreate)
		require.Len(t, installer.InstallCalls, 1)
		assert.Equal(t, "https://pypi.example.com/simple", installer.InstallCalls[0].Opts.IndexURL)
	})

	t.Run("should skip installation when requested", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := writeProject(t)
		locator := &testdoubles.SpyLocator{
			Interpreter: entities.Interpreter{Path: "/usr/bin/python3", Version: "3.12.1"},
		}
		installer := &testdoubles.SpyInstaller{}
		cmd := commands.NewSetupCommand(
			locator, &testdoubles.SpyEnvironments{}, installer, &testdoubles.StubSnapshots{},
		)

		opts := defaultOptions(projectDir)
		opts.SkipInstall = true

		// when
		report, err := cmd.Execute(ctx, opts)

		// then
		require.NoError(t, err)
		require.Len(t, installer.UpgradedEnvs, 1)
		assert.Empty(t, installer.InstallCalls)
		assert.False(t, report.Installed)
	})

	t.Run("should proceed without a manifest and let the install step fail", func(t *testing.T) {
		t.Parallel()

		// given: no requirements.txt on disk, pip reports the failure
		ctx := context.Background()
		projectDir := t.TempDir()
		locator := &testdoubles.SpyLocator{
			Interpreter: entities.Interpreter{Path: "/usr/bin/python3", Version: "3.12.1"},
		}
		installer := &testdoubles.SpyInstaller{
			InstallErr: errors.New("Could not open requirements file"),
		}
		cmd := commands.NewSetupCommand(
			locator, &testdoubles.SpyEnvironments{}, installer, &testdoubles.StubSnapshots{},
		)

		// when
		_, err := cmd.Execute(ctx, defaultOptions(projectDir))

		// then
		require.Error(t, err)
		require.Len(t, installer.InstallCalls, 1)
		assert.Contains(t, err.Error(), "Could not open requirements file")
	})
}
