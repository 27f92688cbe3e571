package entities

// Interpreter is a Python interpreter discovered on the host.
type Interpreter struct {
	Path    string // Absolute path to the binary
	Version string // Reported version, e.g. "3.12.1"
}

// Environment is a created (or inspected) virtual environment.
type Environment struct {
	Dir        string // Root directory of the environment
	PythonPath string // Interpreter inside the environment
	PipPath    string // pip inside the environment
	PyVersion  string // Version recorded in pyvenv.cfg
	BasePrefix string // "home" recorded in pyvenv.cfg
}

// Snapshot captures the VCS state of the project checkout at bootstrap time.
// An empty Revision means the project is not inside a Git repository.
type Snapshot struct {
	Revision string
	Dirty    bool
}

// OutdatedPackage is a package whose installed version lags the latest release.
type OutdatedPackage struct {
	Name    string
	Current string
	Latest  string
}
