package vcs_test

import (
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvaymayekar/sira-console/internal/infrastructure/repositories/vcs"
)

func TestRepository_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("should return a zero snapshot outside any repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repository := vcs.NewRepository()

		// when
		snapshot, err := repository.Snapshot(dir)

		// then
		require.NoError(t, err)
		assert.Empty(t, snapshot.Revision)
		assert.False(t, snapshot.Dirty)
	})

	t.Run("should return a zero snapshot for a repository without commits", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		_, initErr := git.PlainInit(dir, false)
		require.NoError(t, initErr)
		repository := vcs.NewRepository()

		// when
		snapshot, err := repository.Snapshot(dir)

		// then
		require.NoError(t, err)
		assert.Empty(t, snapshot.Revision)
	})
}
