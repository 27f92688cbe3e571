//nolint:testpackage // exercises unexported layout helpers
package python

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// writeVenvDir lays out a minimal virtual environment on disk: the
// pyvenv.cfg marker plus an interpreter file at the platform path.
func writeVenvDir(t *testing.T, cfg string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, venvConfigFile), []byte(cfg), 0o600))

	binary := interpreterPath(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(binary), 0o750))
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0o700))

	return dir
}

func TestVenv_Inspect(t *testing.T) {
	t.Parallel()

	t.Run("should read the environment from pyvenv.cfg", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeVenvDir(t, "home = /usr/bin\nversion = 3.12.1\n")
		venv := NewVenv()

		// when
		env, err := venv.Inspect(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, dir, env.Dir)
		assert.Equal(t, "3.12.1", env.PyVersion)
		assert.Equal(t, "/usr/bin", env.BasePrefix)
		assert.Equal(t, interpreterPath(dir), env.PythonPath)
		assert.Equal(t, pipPath(dir), env.PipPath)
	})

	t.Run("should fall back to version_info", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeVenvDir(t, "home = /usr/bin\nversion_info = 3.13.0\n")
		venv := NewVenv()

		// when
		env, err := venv.Inspect(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "3.13.0", env.PyVersion)
	})

	t.Run("should fail when pyvenv.cfg is absent", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		venv := NewVenv()

		// when
		_, err := venv.Inspect(dir)

		// then
		require.Error(t, err)
	})

	t.Run("should fail when the interpreter file is gone", func(t *testing.T) {
		t.Parallel()

		// given: a config without the binary, as after a partial delete
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, venvConfigFile), []byte("version = 3.12.1\n"), 0o600,
		))
		venv := NewVenv()

		// when
		_, err := venv.Inspect(dir)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no interpreter")
	})
}

func TestVenv_Remove(t *testing.T) {
	t.Parallel()

	t.Run("should remove a directory that holds an environment", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeVenvDir(t, "version = 3.12.1\n")
		venv := NewVenv()

		// when
		err := venv.Remove(dir)

		// then
		require.NoError(t, err)
		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("should refuse a directory without pyvenv.cfg", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "precious.txt"), []byte("keep"), 0o600))
		venv := NewVenv()

		// when
		err := venv.Remove(dir)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not look like a virtual environment")
		_, statErr := os.Stat(filepath.Join(dir, "precious.txt"))
		assert.NoError(t, statErr)
	})
}

func TestVenv_ActivationHint(t *testing.T) {
	t.Parallel()

	// given
	venv := NewVenv()
	dir := filepath.Join("/home", "dev", "sira", ".venv")

	// when
	hint := venv.ActivationHint(entities.Environment{Dir: dir})

	// then
	if runtime.GOOS == "windows" {
		assert.Contains(t, hint, "Scripts")
	} else {
		assert.Equal(t, "source "+filepath.Join(dir, "bin", "activate"), hint)
	}
}

func TestReadVenvConfig(t *testing.T) {
	t.Parallel()

	t.Run("should parse key value pairs and skip malformed lines", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), venvConfigFile)
		content := "home = /usr/bin\n" +
			"include-system-site-packages = false\n" +
			"not a pair\n" +
			"version = 3.12.1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		cfg, err := readVenvConfig(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin", cfg["home"])
		assert.Equal(t, "false", cfg["include-system-site-packages"])
		assert.Equal(t, "3.12.1", cfg["version"])
		assert.Len(t, cfg, 3)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := readVenvConfig(filepath.Join(t.TempDir(), venvConfigFile))

		// then
		require.Error(t, err)
	})
}
