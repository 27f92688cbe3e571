// Package vcs reads the Git state of the project checkout.
package vcs

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

const shortHashLen = 8

// Repository reads checkout snapshots with go-git; no git binary required.
type Repository struct{}

// NewRepository creates a new snapshot repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Snapshot returns the HEAD revision and dirty flag for the repository
// enclosing dir. A directory outside any repository yields a zero Snapshot
// and no error: the original setup scripts never required a checkout.
func (it *Repository) Snapshot(dir string) (entities.Snapshot, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return entities.Snapshot{}, nil
		}
		return entities.Snapshot{}, fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		// Freshly initialized repository without commits
		return entities.Snapshot{}, nil
	}

	snapshot := entities.Snapshot{Revision: head.Hash().String()[:shortHashLen]}

	worktree, err := repo.Worktree()
	if err != nil {
		return snapshot, nil
	}

	status, err := worktree.Status()
	if err != nil {
		return snapshot, nil
	}

	snapshot.Dirty = !status.IsClean()

	return snapshot, nil
}
