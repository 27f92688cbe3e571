package config

// Exported for tests.
var (
	ResolveValue = resolveValue
	Validate     = validate
)
