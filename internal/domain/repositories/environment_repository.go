package repositories

import (
	"context"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// EnvironmentRepository manages virtual environment directories.
type EnvironmentRepository interface {
	// Create builds a virtual environment at dir using the given interpreter.
	// An existing healthy environment is reused unless recreate is set, in
	// which case it is rebuilt from scratch.
	Create(ctx context.Context, interp entities.Interpreter, dir string, recreate bool) (entities.Environment, error)

	// Inspect reads an existing environment (pyvenv.cfg and interpreter paths).
	Inspect(dir string) (entities.Environment, error)

	// Remove deletes the environment directory. It refuses to delete a
	// directory that does not look like a virtual environment.
	Remove(dir string) error

	// ActivationHint returns the platform-appropriate shell line a user
	// would run to activate the environment.
	ActivationHint(env entities.Environment) string
}
