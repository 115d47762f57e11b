package awsapi

import (
	"errors"
	"fmt"

	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
)

// ProbeError wraps the failure of a single remote capability call.
type ProbeError struct {
	Op     string // capability name, e.g. "list-quotas"
	Region string // empty for non-regional calls
	Err    error
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("%s probe failed in %s: %v", e.Op, e.Region, e.Err)
	}
	return fmt.Sprintf("%s probe failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// isNotFoundError checks if the error indicates a missing IAM entity.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nse *iamtypes.NoSuchEntityException
	if errors.As(err, &nse) {
		return true
	}

	// Fall back to the generic API error code.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchEntity"
	}

	return false
}
