package domain

import "context"

// SecurityCheckResult is the outcome of one security probe. Unlike suite
// checks, security checks may report WARN for findings that should not
// block a release on their own.
type SecurityCheckResult struct {
	Status  Status  `json:"status"`
	Message string  `json:"message"`
	Details Details `json:"details,omitempty"`
}

// SecuritySummary counts findings per probe
type SecuritySummary struct {
	Vulnerabilities  int `json:"vulnerabilities"`
	Secrets          int `json:"secrets"`
	ForbiddenBlocks  int `json:"forbidden_blocks"`
	DependencyIssues int `json:"dependency_issues"`
	PermissionIssues int `json:"permission_issues"`
}

// SecurityReport is the full security scan outcome
type SecurityReport struct {
	Timestamp      string                         `json:"timestamp"`
	OverallStatus  Status                         `json:"overall_status"`
	TotalChecks    int                            `json:"total_checks"`
	TotalIssues    int                            `json:"total_issues"`
	CriticalIssues int                            `json:"critical_issues"`
	Checks         map[string]SecurityCheckResult `json:"checks"`
	Summary        SecuritySummary                `json:"summary"`
}

// SecurityOverallStatus reduces per-check statuses. FAIL dominates ERROR,
// which dominates WARN; a clean scan is PASS.
func SecurityOverallStatus(statuses []Status) Status {
	hasError, hasWarn := false, false
	for _, s := range statuses {
		switch s {
		case StatusFail:
			return StatusFail
		case StatusError:
			hasError = true
		case StatusWarn:
			hasWarn = true
		}
	}
	if hasError {
		return StatusError
	}
	if hasWarn {
		return StatusWarn
	}
	return StatusPass
}

// SecurityExitOK reports whether the scan maps to exit 0. Warnings do not
// fail the gate.
func SecurityExitOK(status Status) bool {
	return status == StatusPass || status == StatusWarn
}

// SecurityChecker runs the security battery against the target project
type SecurityChecker interface {
	RunAll(ctx context.Context) (*SecurityReport, error)
}
