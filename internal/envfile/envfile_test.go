package envfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvaymayekar/sira-console/internal/envfile"
)

const sampleEnvironments = `
environment "dev" {
  requirements = "requirements-dev.txt"
  venv         = ".venv-dev"
  python       = ">=3.10"
}

environment "ci" {
  requirements = "requirements.txt"
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("should parse environment blocks", func(t *testing.T) {
		t.Parallel()

		// when
		envs, err := envfile.Parse(sampleEnvironments, "environments.hcl")

		// then
		require.NoError(t, err)
		require.Len(t, envs, 2)
		assert.Equal(t, "dev", envs[0].Name)
		assert.Equal(t, "requirements-dev.txt", envs[0].Requirements)
		assert.Equal(t, ".venv-dev", envs[0].Venv)
		assert.Equal(t, ">=3.10", envs[0].Python)
		assert.Equal(t, "ci", envs[1].Name)
		assert.Empty(t, envs[1].Venv)
	})

	t.Run("should ignore unknown attributes", func(t *testing.T) {
		t.Parallel()

		// given
		content := `
environment "dev" {
  requirements = "requirements-dev.txt"
  color        = "orange"
}
`

		// when
		envs, err := envfile.Parse(content, "environments.hcl")

		// then
		require.NoError(t, err)
		require.Len(t, envs, 1)
		assert.Equal(t, "requirements-dev.txt", envs[0].Requirements)
	})

	t.Run("should fall back to regex parsing for malformed HCL", func(t *testing.T) {
		t.Parallel()

		// given: an unclosed block elsewhere breaks HCL parsing
		content := `
environment "dev" {
  venv = ".venv-dev"
}
environment "broken {
`

		// when
		envs, err := envfile.Parse(content, "environments.hcl")

		// then
		require.NoError(t, err)
		require.Len(t, envs, 1)
		assert.Equal(t, "dev", envs[0].Name)
		assert.Equal(t, ".venv-dev", envs[0].Venv)
	})

	t.Run("should return nothing for content without environments", func(t *testing.T) {
		t.Parallel()

		// when
		envs, err := envfile.Parse("# no environments here\n", "environments.hcl")

		// then
		require.NoError(t, err)
		assert.Empty(t, envs)
	})
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	t.Run("should read the file from disk", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "environments.hcl")
		require.NoError(t, os.WriteFile(path, []byte(sampleEnvironments), 0o600))

		// when
		envs, err := envfile.ParseFile(path)

		// then
		require.NoError(t, err)
		assert.Len(t, envs, 2)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := envfile.ParseFile(filepath.Join(t.TempDir(), "environments.hcl"))

		// then
		require.Error(t, err)
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("should find an environment by name", func(t *testing.T) {
		t.Parallel()

		// given
		envs := []envfile.Environment{{Name: "dev"}, {Name: "ci"}}

		// when
		env, err := envfile.Lookup(envs, "ci")

		// then
		require.NoError(t, err)
		assert.Equal(t, "ci", env.Name)
	})

	t.Run("should fail for an unknown name", func(t *testing.T) {
		t.Parallel()

		// given
		envs := []envfile.Environment{{Name: "dev"}}

		// when
		_, err := envfile.Lookup(envs, "prod")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prod")
	})
}
