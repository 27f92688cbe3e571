// Package envfile parses the optional environments.hcl file, which lets a
// project define named environment profiles:
//
//	environment "dev" {
//	  requirements = "requirements-dev.txt"
//	  venv         = ".venv-dev"
//	  python       = ">=3.10"
//	}
package envfile

import (
	"fmt"
	"os"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// DefaultFileName is the environments file looked up in the project directory.
const DefaultFileName = "environments.hcl"

// Environment is one named profile from the environments file.
type Environment struct {
	Name         string
	Requirements string // Manifest path override
	Venv         string // Environment directory override
	Python       string // Interpreter constraint override
	Line         int    // Line where the block starts
}

// ParseFile reads and parses an environments file.
func ParseFile(path string) ([]Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environments file %q: %w", path, err)
	}
	return Parse(string(data), path)
}

// Parse extracts environment blocks from HCL content.
func Parse(content, filePath string) ([]Environment, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL([]byte(content), filePath)
	if diags.HasErrors() {
		// Try regex-based parsing as fallback
		return parseWithRegex(content)
	}

	body := file.Body
	if body == nil {
		return nil, nil
	}

	bodyContent, _, diags := body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "environment", LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return parseWithRegex(content)
	}

	var envs []Environment

	for _, block := range bodyContent.Blocks {
		if block.Type != "environment" {
			continue
		}

		env := Environment{Line: block.DefRange.Start.Line}
		if len(block.Labels) > 0 {
			env.Name = block.Labels[0]
		}

		attrs, _ := block.Body.JustAttributes()
		env.Requirements = stringAttr(attrs, "requirements")
		env.Venv = stringAttr(attrs, "venv")
		env.Python = stringAttr(attrs, "python")

		if env.Name == "" {
			continue
		}
		envs = append(envs, env)
	}

	return envs, nil
}

// stringAttr evaluates a string attribute, tolerating absent attributes and
// non-string values.
func stringAttr(attrs hcl.Attributes, name string) string {
	attr, ok := attrs[name]
	if !ok {
		return ""
	}

	val, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() || val.Type() != cty.String {
		return ""
	}

	return val.AsString()
}

// parseWithRegex is a fallback parser for cases where HCL parsing fails.
func parseWithRegex(content string) ([]Environment, error) {
	blockPattern := regexp.MustCompile(`(?s)environment\s+"([^"]+)"\s*\{([^}]*)\}`)
	attrPattern := regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)

	var envs []Environment

	for _, match := range blockPattern.FindAllStringSubmatch(content, -1) {
		env := Environment{Name: match[1]}

		for _, attr := range attrPattern.FindAllStringSubmatch(match[2], -1) {
			switch attr[1] {
			case "requirements":
				env.Requirements = attr[2]
			case "venv":
				env.Venv = attr[2]
			case "python":
				env.Python = attr[2]
			}
		}

		envs = append(envs, env)
	}

	return envs, nil
}

// Lookup finds an environment by name.
func Lookup(envs []Environment, name string) (Environment, error) {
	for _, env := range envs {
		if env.Name == name {
			return env, nil
		}
	}
	return Environment{}, fmt.Errorf("environment %q not defined", name)
}
