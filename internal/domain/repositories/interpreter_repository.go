package repositories

import (
	"context"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// InterpreterLocator finds a usable Python interpreter on the host.
type InterpreterLocator interface {
	// Locate resolves a Python interpreter and probes its version.
	// When override is non-empty only that path is considered.
	Locate(ctx context.Context, override string) (entities.Interpreter, error)
}
