package python

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/anvaymayekar/sira-console/internal/domain/entities"
)

// Locator discovers a Python interpreter on the host.
type Locator struct{}

// NewLocator creates a new interpreter locator.
func NewLocator() *Locator {
	return &Locator{}
}

var versionPattern = regexp.MustCompile(`Python\s+(\d+(?:\.\d+)*\S*)`)

// Locate resolves a Python interpreter and probes its version. When override
// is non-empty only that path is considered.
func (it *Locator) Locate(ctx context.Context, override string) (entities.Interpreter, error) {
	if override != "" {
		return it.probe(ctx, override)
	}

	binary, err := findBinary()
	if err != nil {
		return entities.Interpreter{}, err
	}

	return it.probe(ctx, binary)
}

// probe runs `python --version` and parses the reported version.
func (it *Locator) probe(ctx context.Context, binary string) (entities.Interpreter, error) {
	cmd := exec.CommandContext(ctx, binary, "--version")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return entities.Interpreter{}, fmt.Errorf(
			"failed to probe interpreter %q: %w\nOutput:\n%s", binary, err, string(output),
		)
	}

	version := parseVersionOutput(string(output))
	if version == "" {
		return entities.Interpreter{}, fmt.Errorf(
			"interpreter %q reported an unrecognized version: %q", binary, strings.TrimSpace(string(output)),
		)
	}

	path := binary
	if abs, absErr := filepath.Abs(binary); absErr == nil {
		path = abs
	}
	if resolved, lookErr := exec.LookPath(binary); lookErr == nil {
		path = resolved
	}

	logger.Debugf("Probed interpreter %s (version %s)", path, version)

	return entities.Interpreter{Path: path, Version: version}, nil
}

// parseVersionOutput extracts the version from `python --version` output.
func parseVersionOutput(output string) string {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return ""
	}
	return match[1]
}

// findBinary locates a Python binary on PATH, falling back to well-known
// install locations.
func findBinary() (string, error) {
	for _, name := range candidateNames() {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	for _, p := range fallbackPaths() {
		if _, statErr := os.Stat(p); statErr == nil {
			return p, nil
		}
	}

	return "", errors.New("no Python interpreter found on PATH (tried " +
		strings.Join(candidateNames(), ", ") + ")")
}

// candidateNames returns the PATH lookups in platform order. Windows ships
// the `py` launcher and usually names the binary `python`; everywhere else
// `python3` comes first.
func candidateNames() []string {
	if runtime.GOOS == "windows" {
		return []string{"py", "python", "python3"}
	}
	return []string{"python3", "python"}
}

func fallbackPaths() []string {
	if runtime.GOOS == "windows" {
		return nil
	}

	paths := []string{
		"/usr/bin/python3",
		"/usr/local/bin/python3",
		"/usr/bin/python",
		"/usr/local/bin/python",
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths,
			filepath.Join(home, ".pyenv", "shims", "python3"),
			filepath.Join(home, ".pyenv", "shims", "python"),
		)
	}

	return paths
}
