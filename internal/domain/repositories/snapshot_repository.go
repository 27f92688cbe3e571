package repositories

import (
	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// SnapshotRepository reads the VCS state of the project checkout.
type SnapshotRepository interface {
	// Snapshot returns the current revision and dirty flag for the
	// repository enclosing dir. A directory outside any repository yields
	// a zero Snapshot and no error.
	Snapshot(dir string) (entities.Snapshot, error)
}
