package preflight

import "fmt"

// Quota thresholds applied by the gate after quota aggregation.
const (
	// MinimumQuota is the smallest global maximum spot quota the pipeline
	// accepts without refusing outright (quota 1 has its own
	// confirmation path).
	MinimumQuota = 4

	// RecommendedQuota is the level below which the pipeline proceeds
	// with a recorded warning.
	RecommendedQuota = 40
)

// ZeroQuotaError indicates that no region reported a positive quota for any
// tracked code. Deployment cannot proceed anywhere.
type ZeroQuotaError struct {
	Codes []string // the tracked quota codes that were probed
}

// Error implements the error interface.
func (e *ZeroQuotaError) Error() string {
	return "no region has a usable spot quota for any tracked hardware family"
}

// Remediation returns an actionable hint for the operator.
func (e *ZeroQuotaError) Remediation() string {
	return fmt.Sprintf("request a service quota increase for one of the spot quota codes %v in at least one region, then re-run preflight", e.Codes)
}

// BelowMinimumQuotaError indicates the best observed quota is positive but
// under the hard minimum.
type BelowMinimumQuotaError struct {
	Max float64
}

// Error implements the error interface.
func (e *BelowMinimumQuotaError) Error() string {
	return fmt.Sprintf("maximum observed spot quota is %g, below the minimum of %d", e.Max, MinimumQuota)
}

// Remediation returns an actionable hint for the operator.
func (e *BelowMinimumQuotaError) Remediation() string {
	return fmt.Sprintf("request a spot quota increase to at least %d (ideally %d) in your preferred region", MinimumQuota, RecommendedQuota)
}

// ConfirmationRequiredError indicates the best observed quota is exactly one
// instance and the operator did not explicitly confirm proceeding.
type ConfirmationRequiredError struct{}

// Error implements the error interface.
func (e *ConfirmationRequiredError) Error() string {
	return "maximum observed spot quota is a single instance and deployment was not confirmed"
}

// Remediation returns an actionable hint for the operator.
func (e *ConfirmationRequiredError) Remediation() string {
	return "re-run interactively and confirm the single-instance deployment, or request a spot quota increase first"
}
