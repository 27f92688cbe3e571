package manifest

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// IsNewerVersion compares two version strings and returns true if newVersion
// is newer than currentVersion.
func IsNewerVersion(currentVersion, newVersion string) bool {
	return compareVersions(newVersion, currentVersion) > 0
}

// compareVersions returns -1, 0, or 1 comparing a against b. Valid semver
// pairs compare semantically; anything else falls back to string order.
func compareVersions(a, b string) int {
	na := normalizeVersion(a)
	nb := normalizeVersion(b)

	if semver.IsValid(na) && semver.IsValid(nb) {
		return semver.Compare(na, nb)
	}

	return strings.Compare(a, b)
}

// normalizeVersion ensures the version has a 'v' prefix for semver compatibility.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// SatisfiesConstraints checks a version against a comma-separated constraint
// list such as ">=3.8,<4". An empty constraint list always passes.
func SatisfiesConstraints(version, constraints string) (bool, error) {
	constraints = strings.TrimSpace(constraints)
	if constraints == "" {
		return true, nil
	}

	for _, clause := range strings.Split(constraints, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		cm := constraintPattern.FindStringSubmatch(clause)
		if cm == nil {
			return false, fmt.Errorf("invalid version constraint %q", clause)
		}
		if !satisfiesClause(version, cm[1], cm[2]) {
			return false, nil
		}
	}

	return true, nil
}

func satisfiesClause(version, op, want string) bool {
	cmp := compareVersions(version, want)
	switch op {
	case "==", "===":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case "~=":
		// Compatible release: at least want, same release series
		return cmp >= 0 && sameSeries(version, want)
	default:
		return false
	}
}

// sameSeries reports whether version shares all but the last numeric
// component of want, which is the series a compatible-release clause pins.
func sameSeries(version, want string) bool {
	wantParts := strings.Split(want, ".")
	if len(wantParts) < 2 {
		return true
	}
	prefix := strings.Join(wantParts[:len(wantParts)-1], ".") + "."
	return strings.HasPrefix(version+".", prefix) || strings.HasPrefix(version, prefix)
}
