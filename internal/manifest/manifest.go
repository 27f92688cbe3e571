package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// Requirement represents a single dependency specifier from a manifest file.
type Requirement struct {
	Name        string       // Distribution name as written
	Extras      []string     // Optional extras, e.g. ["gui", "test"]
	Constraints []Constraint // Version constraints, in written order
	Marker      string       // Environment marker after ';', verbatim
	Editable    bool         // True for -e / --editable entries
	URL         string       // Direct reference (name @ url) or editable path
	Raw         string       // The specifier as written, trimmed
	FilePath    string       // File where this requirement was found
	Line        int          // Line number in the file
}

// Constraint is a single version clause, e.g. {Op: ">=", Version: "6.4"}.
type Constraint struct {
	Op      string
	Version string
}

// Option is a pip option line (e.g. --index-url) found in a manifest.
type Option struct {
	Flag  string
	Value string
	Line  int
}

// Manifest is a parsed requirements file, includes already flattened in.
type Manifest struct {
	Path         string
	Requirements []Requirement
	Options      []Option
}

var (
	namePattern       = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(.*)$`)
	constraintPattern = regexp.MustCompile(`^(===|==|~=|!=|>=|<=|>|<)\s*([^\s,]+)$`)
	canonicalPattern  = regexp.MustCompile(`[-_.]+`)
)

// Parse reads a requirements file, following -r includes recursively.
func Parse(path string) (*Manifest, error) {
	m := &Manifest{Path: path}
	visited := mapset.NewSet()
	if err := parseFile(path, m, visited); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseContent parses manifest content directly. Includes are resolved
// relative to the directory of filePath.
func ParseContent(content, filePath string) (*Manifest, error) {
	m := &Manifest{Path: filePath}
	visited := mapset.NewSet()
	if abs, err := filepath.Abs(filePath); err == nil {
		visited.Add(abs)
	}
	if err := parseContent(content, filePath, m, visited); err != nil {
		return nil, err
	}
	return m, nil
}

func parseFile(path string, m *Manifest, visited mapset.Set) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid manifest path %q: %w", path, err)
	}
	if !visited.Add(abs) {
		// Already parsed, include cycle
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	return parseContent(string(data), path, m, visited)
}

func parseContent(content, filePath string, m *Manifest, visited mapset.Set) error {
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1

		// Join backslash continuations onto a single logical line
		logical := strings.TrimRight(lines[i], "\r")
		for strings.HasSuffix(strings.TrimRight(logical, " \t"), `\`) && i+1 < len(lines) {
			logical = strings.TrimSuffix(strings.TrimRight(logical, " \t"), `\`)
			i++
			logical += strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
		}

		text := stripComment(logical)
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "-") {
			if err := parseOptionLine(text, filePath, lineNo, m, visited); err != nil {
				return err
			}
			continue
		}

		req, err := parseRequirement(text, filePath, lineNo)
		if err != nil {
			return err
		}
		m.Requirements = append(m.Requirements, req)
	}

	return nil
}

// stripComment removes a trailing comment. Following pip, '#' only starts a
// comment at the beginning of the line or after whitespace.
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	for idx := 0; idx < len(trimmed); idx++ {
		if trimmed[idx] != '#' {
			continue
		}
		if idx > 0 && (trimmed[idx-1] == ' ' || trimmed[idx-1] == '\t') {
			return strings.TrimSpace(trimmed[:idx])
		}
	}
	return trimmed
}

// parseOptionLine handles lines starting with '-': includes, editable
// installs, and plain pip options.
func parseOptionLine(text, filePath string, lineNo int, m *Manifest, visited mapset.Set) error {
	flag, value := splitOption(text)

	switch flag {
	case "-r", "--requirement":
		if value == "" {
			return fmt.Errorf("%s:%d: %s requires a file path", filePath, lineNo, flag)
		}
		include := value
		if !filepath.IsAbs(include) {
			include = filepath.Join(filepath.Dir(filePath), include)
		}
		if err := parseFile(include, m, visited); err != nil {
			return fmt.Errorf("%s:%d: %w", filePath, lineNo, err)
		}
		return nil

	case "-e", "--editable":
		if value == "" {
			return fmt.Errorf("%s:%d: %s requires a target", filePath, lineNo, flag)
		}
		m.Requirements = append(m.Requirements, Requirement{
			Name:     editableName(value),
			Editable: true,
			URL:      value,
			Raw:      text,
			FilePath: filePath,
			Line:     lineNo,
		})
		return nil

	default:
		m.Options = append(m.Options, Option{Flag: flag, Value: value, Line: lineNo})
		return nil
	}
}

func splitOption(text string) (string, string) {
	if eq := strings.Index(text, "="); eq > 0 && strings.HasPrefix(text, "--") {
		return text[:eq], strings.TrimSpace(text[eq+1:])
	}
	fields := strings.Fields(text)
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// editableName extracts the distribution name from a #egg= fragment when
// present; a bare path has no reliable name.
func editableName(target string) string {
	if idx := strings.Index(target, "#egg="); idx >= 0 {
		name := target[idx+len("#egg="):]
		if amp := strings.Index(name, "&"); amp >= 0 {
			name = name[:amp]
		}
		return name
	}
	return ""
}

// parseRequirement parses a single PEP 508-style specifier line.
func parseRequirement(text, filePath string, lineNo int) (Requirement, error) {
	req := Requirement{Raw: text, FilePath: filePath, Line: lineNo}

	// Environment marker comes after ';'
	spec := text
	if semi := strings.Index(spec, ";"); semi >= 0 {
		req.Marker = strings.TrimSpace(spec[semi+1:])
		spec = strings.TrimSpace(spec[:semi])
	}

	match := namePattern.FindStringSubmatch(spec)
	if match == nil {
		return req, fmt.Errorf("%s:%d: cannot parse requirement %q", filePath, lineNo, text)
	}

	req.Name = match[1]
	if match[2] != "" {
		for _, extra := range strings.Split(match[2], ",") {
			if e := strings.TrimSpace(extra); e != "" {
				req.Extras = append(req.Extras, e)
			}
		}
	}

	rest := strings.TrimSpace(match[3])
	if rest == "" {
		return req, nil
	}

	// Direct reference: name @ url
	if strings.HasPrefix(rest, "@") {
		req.URL = strings.TrimSpace(strings.TrimPrefix(rest, "@"))
		if req.URL == "" {
			return req, fmt.Errorf("%s:%d: direct reference without URL in %q", filePath, lineNo, text)
		}
		return req, nil
	}

	for _, clause := range strings.Split(rest, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		cm := constraintPattern.FindStringSubmatch(clause)
		if cm == nil {
			return req, fmt.Errorf("%s:%d: invalid version clause %q in %q", filePath, lineNo, clause, text)
		}
		req.Constraints = append(req.Constraints, Constraint{Op: cm[1], Version: cm[2]})
	}

	return req, nil
}

// CanonicalName normalizes a distribution name per the index convention:
// runs of '-', '_' and '.' collapse to a single '-', case folded.
func CanonicalName(name string) string {
	return strings.ToLower(canonicalPattern.ReplaceAllString(name, "-"))
}

// Duplicates returns the canonical names that appear more than once in the
// manifest, in order of first duplicated occurrence.
func Duplicates(m *Manifest) []string {
	seen := mapset.NewSet()
	reported := mapset.NewSet()

	var dupes []string
	for _, req := range m.Requirements {
		if req.Name == "" {
			continue
		}
		canonical := CanonicalName(req.Name)
		if !seen.Add(canonical) && reported.Add(canonical) {
			dupes = append(dupes, canonical)
		}
	}
	return dupes
}

// String renders a requirement back to a compact specifier form.
func (r Requirement) String() string {
	if r.Editable {
		return "-e " + r.URL
	}
	var sb strings.Builder
	sb.WriteString(r.Name)
	if len(r.Extras) > 0 {
		sb.WriteString("[" + strings.Join(r.Extras, ",") + "]")
	}
	for i, c := range r.Constraints {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(c.Op + c.Version)
	}
	if r.URL != "" && !r.Editable {
		sb.WriteString(" @ " + r.URL)
	}
	if r.Marker != "" {
		sb.WriteString("; " + r.Marker)
	}
	return sb.String()
}
