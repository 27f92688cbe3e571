package repositories

import "context"

// ReleaseRepository looks up the latest published release of a package on
// the package index.
type ReleaseRepository interface {
	// LatestVersion returns the newest release of the named package.
	LatestVersion(ctx context.Context, name string) (string, error)
}
