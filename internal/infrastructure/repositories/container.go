package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/anvaymayekar/sira-console/internal/domain/repositories"
	pyRepo "github.com/anvaymayekar/sira-console/internal/infrastructure/repositories/python"
	pypiRepo "github.com/anvaymayekar/sira-console/internal/infrastructure/repositories/pypi"
	vcsRepo "github.com/anvaymayekar/sira-console/internal/infrastructure/repositories/vcs"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register infrastructure constructors
	if err := container.Provide(pyRepo.NewLocator); err != nil {
		return err
	}
	if err := container.Provide(pyRepo.NewVenv); err != nil {
		return err
	}
	if err := container.Provide(pyRepo.NewPip); err != nil {
		return err
	}
	if err := container.Provide(pypiRepo.NewClient); err != nil {
		return err
	}
	if err := container.Provide(vcsRepo.NewRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *pyRepo.Locator) domainRepos.InterpreterLocator {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *pyRepo.Venv) domainRepos.EnvironmentRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *pyRepo.Pip) domainRepos.PackageInstaller {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *pypiRepo.Client) domainRepos.ReleaseRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *vcsRepo.Repository) domainRepos.SnapshotRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
