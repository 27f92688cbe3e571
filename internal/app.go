package internal

import (
	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// AppInternal aggregates the controllers that make up the CLI surface.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application aggregate from the controller slice.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns every registered controller.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
