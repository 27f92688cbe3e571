package controllers

import (
	"go.uber.org/dig"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewSetupController); err != nil {
		return err
	}
	if err := container.Provide(NewDoctorController); err != nil {
		return err
	}
	if err := container.Provide(NewCleanController); err != nil {
		return err
	}
	if err := container.Provide(NewRequirementsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	setupController *SetupController,
	doctorController *DoctorController,
	cleanController *CleanController,
	requirementsController *RequirementsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		setupController,
		doctorController,
		cleanController,
		requirementsController,
	}
}
