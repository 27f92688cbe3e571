package main

import (
	"go.uber.org/dig"

	"github.com/anvaymayekar/sira-console/internal"
	"github.com/anvaymayekar/sira-console/internal/infrastructure/controllers"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectSetupController() *controllers.SetupController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var setupController *controllers.SetupController
	if err := container.Invoke(func(sc *controllers.SetupController) {
		setupController = sc
	}); err != nil {
		panic(err)
	}

	return setupController
}
