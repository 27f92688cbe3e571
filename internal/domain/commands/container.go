package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewSetupCommand); err != nil {
		return err
	}
	if err := container.Provide(NewDoctorCommand); err != nil {
		return err
	}
	if err := container.Provide(NewCleanCommand); err != nil {
		return err
	}
	if err := container.Provide(NewRequirementsCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *SetupCommand) Setup {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DoctorCommand) Doctor {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *CleanCommand) Clean {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RequirementsCommand) Requirements {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
