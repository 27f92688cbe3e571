package python

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// Venv manages virtual environment directories through `python -m venv`.
type Venv struct{}

// NewVenv creates a new virtual environment repository.
func NewVenv() *Venv {
	return &Venv{}
}

const venvConfigFile = "pyvenv.cfg"

// Create builds a virtual environment at dir using the given interpreter.
// An existing healthy environment is reused unless recreate is set.
func (it *Venv) Create(
	ctx context.Context,
	interp entities.Interpreter,
	dir string,
	recreate bool,
) (entities.Environment, error) {
	if !recreate {
		if env, err := it.Inspect(dir); err == nil {
			logger.Infof("Reusing existing virtual environment at %s", dir)
			return env, nil
		}
	}

	args := []string{"-m", "venv"}
	if recreate {
		args = append(args, "--clear")
	}
	args = append(args, dir)

	cmd := exec.CommandContext(ctx, interp.Path, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return entities.Environment{}, fmt.Errorf(
			"venv creation failed: %w\nOutput:\n%s", err, string(output),
		)
	}

	return it.Inspect(dir)
}

// Inspect reads an existing environment: pyvenv.cfg plus the interpreter
// and pip paths for the platform's layout.
func (it *Venv) Inspect(dir string) (entities.Environment, error) {
	cfg, err := readVenvConfig(filepath.Join(dir, venvConfigFile))
	if err != nil {
		return entities.Environment{}, err
	}

	env := entities.Environment{
		Dir:        dir,
		PythonPath: interpreterPath(dir),
		PipPath:    pipPath(dir),
		PyVersion:  cfg["version"],
		BasePrefix: cfg["home"],
	}
	if env.PyVersion == "" {
		// Newer venv versions write version_info instead
		env.PyVersion = cfg["version_info"]
	}

	if _, statErr := os.Stat(env.PythonPath); statErr != nil {
		return entities.Environment{}, fmt.Errorf(
			"virtual environment at %q has no interpreter: %w", dir, statErr,
		)
	}

	return env, nil
}

// Remove deletes the environment directory. The pyvenv.cfg guard keeps a
// mistyped path from deleting an unrelated directory tree.
func (it *Venv) Remove(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, venvConfigFile)); err != nil {
		return fmt.Errorf(
			"%q does not look like a virtual environment (no %s): %w", dir, venvConfigFile, err,
		)
	}
	return os.RemoveAll(dir)
}

// ActivationHint returns the shell line a user runs to activate the
// environment on this platform.
func (it *Venv) ActivationHint(env entities.Environment) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(env.Dir, "Scripts", "activate")
	}
	return "source " + filepath.Join(env.Dir, "bin", "activate")
}

// readVenvConfig parses pyvenv.cfg, a flat `key = value` file written by
// the venv module itself.
func readVenvConfig(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	cfg := make(map[string]string)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		eq := strings.Index(line, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		if key != "" {
			cfg[key] = value
		}
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, scanErr)
	}

	return cfg, nil
}

func interpreterPath(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}

func pipPath(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts", "pip.exe")
	}
	return filepath.Join(dir, "bin", "pip")
}
