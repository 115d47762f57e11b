// Package awsapi provides a wrapper around the AWS APIs the preflight
// pipeline probes. It normalizes SDK responses into plain values so the
// aggregation logic never touches SDK types.
package awsapi

import (
	"context"
)

// Region is one entry from the provider's region listing.
type Region struct {
	Name        string
	OptInStatus string
}

// Quota is one service-quota row, already flattened to code and value.
type Quota struct {
	Code  string
	Value float64
}

// Zone is one availability zone with its lifecycle state.
type Zone struct {
	Name  string
	State string
}

// CloudAPI defines the remote capability operations consumed by the
// preflight pipeline. It abstracts the underlying provider API; RealClient
// implements it against AWS and MockClient implements it for tests.
type CloudAPI interface {
	// ListRegions returns every region visible to the account, in the
	// provider's native order, including regions the account has not
	// opted into.
	ListRegions(ctx context.Context) ([]Region, error)

	// ListSpotQuotas returns the full EC2 service-quota list for one
	// region. Filtering to tracked codes is the caller's concern.
	ListSpotQuotas(ctx context.Context, region string) ([]Quota, error)

	// ListAvailabilityZones returns every availability zone of one
	// region, regardless of state.
	ListAvailabilityZones(ctx context.Context, region string) ([]Zone, error)

	// RoleExists reports whether the named IAM role exists. A missing
	// role is not an error; (false, nil) is returned.
	RoleExists(ctx context.Context, name string) (bool, error)

	// GetHostedZone resolves a hosted zone id to its zone name, as
	// returned by the provider (typically with a trailing dot).
	GetHostedZone(ctx context.Context, id string) (string, error)
}
