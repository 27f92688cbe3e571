package entities

// StepResult records the outcome of a single bootstrap step, including the
// combined output of the external tool that ran it.
type StepResult struct {
	Name   string
	Output string
	Err    error
}

// BootstrapReport is the full outcome of a setup run.
type BootstrapReport struct {
	Interpreter Interpreter
	Environment Environment
	Installed   bool
	Snapshot    Snapshot
	Steps       []StepResult
}

// CheckStatus classifies a single doctor check.
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// Check is one diagnostic result produced by the doctor command.
type Check struct {
	Name   string
	Status CheckStatus
	Detail string
}

// HasFailure returns true if any check in the list failed.
func HasFailure(checks []Check) bool {
	for _, c := range checks {
		if c.Status == CheckFail {
			return true
		}
	}
	return false
}
