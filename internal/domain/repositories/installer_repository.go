package repositories

import (
	"context"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// InstallOptions holds options for a manifest installation.
type InstallOptions struct {
	IndexURL string // Alternative package index, empty for the default
}

// PackageInstaller drives pip inside a virtual environment. All operations
// go through the environment's own interpreter (`python -m pip`) so the
// system installation is never touched.
type PackageInstaller interface {
	// UpgradeTooling upgrades pip itself and returns the tool output.
	UpgradeTooling(ctx context.Context, env entities.Environment) (string, error)

	// Install installs every requirement from the manifest file and returns
	// the tool output.
	Install(ctx context.Context, env entities.Environment, manifestPath string, opts InstallOptions) (string, error)

	// ListOutdated reports installed packages with a newer release available.
	ListOutdated(ctx context.Context, env entities.Environment) ([]entities.OutdatedPackage, error)
}
