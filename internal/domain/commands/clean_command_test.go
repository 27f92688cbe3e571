package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvaymayekar/sira-console/internal/domain/commands"
	testdoubles "github.com/anvaymayekar/sira-console/test"
)

func TestCleanCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should remove the environment directory", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		projectDir := t.TempDir()
		environments := &testdoubles.SpyEnvironments{}
		cmd := commands.NewCleanCommand(environments)

		// when
		err := cmd.Execute(ctx, commands.CleanOptions{ProjectDir: projectDir, VenvDir: ".venv"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(projectDir, ".venv")}, environments.RemovedDirs)
	})

	t.Run("should remove nothing in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		environments := &testdoubles.SpyEnvironments{}
		cmd := commands.NewCleanCommand(environments)

		// when
		err := cmd.Execute(ctx, commands.CleanOptions{
			ProjectDir: t.TempDir(), VenvDir: ".venv", DryRun: true,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, environments.RemovedDirs)
	})

	t.Run("should surface removal errors", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		environments := &testdoubles.SpyEnvironments{
			RemoveErr: errors.New("refusing to remove: no pyvenv.cfg found"),
		}
		cmd := commands.NewCleanCommand(environments)

		// when
		err := cmd.Execute(ctx, commands.CleanOptions{ProjectDir: t.TempDir(), VenvDir: ".venv"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pyvenv.cfg")
	})
}
