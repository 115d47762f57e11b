package awsapi

import "context"

// MockClient is a mock implementation of CloudAPI for tests.
type MockClient struct {
	ListRegionsFunc           func(ctx context.Context) ([]Region, error)
	ListSpotQuotasFunc        func(ctx context.Context, region string) ([]Quota, error)
	ListAvailabilityZonesFunc func(ctx context.Context, region string) ([]Zone, error)
	RoleExistsFunc            func(ctx context.Context, name string) (bool, error)
	GetHostedZoneFunc         func(ctx context.Context, id string) (string, error)
}

// ListRegions calls the mock function or returns empty defaults.
func (m *MockClient) ListRegions(ctx context.Context) ([]Region, error) {
	if m.ListRegionsFunc != nil {
		return m.ListRegionsFunc(ctx)
	}
	return nil, nil
}

// ListSpotQuotas calls the mock function or returns empty defaults.
func (m *MockClient) ListSpotQuotas(ctx context.Context, region string) ([]Quota, error) {
	if m.ListSpotQuotasFunc != nil {
		return m.ListSpotQuotasFunc(ctx, region)
	}
	return nil, nil
}

// ListAvailabilityZones calls the mock function or returns empty defaults.
func (m *MockClient) ListAvailabilityZones(ctx context.Context, region string) ([]Zone, error) {
	if m.ListAvailabilityZonesFunc != nil {
		return m.ListAvailabilityZonesFunc(ctx, region)
	}
	return nil, nil
}

// RoleExists calls the mock function or reports the role as present.
func (m *MockClient) RoleExists(ctx context.Context, name string) (bool, error) {
	if m.RoleExistsFunc != nil {
		return m.RoleExistsFunc(ctx, name)
	}
	return true, nil
}

// GetHostedZone calls the mock function or returns an empty name.
func (m *MockClient) GetHostedZone(ctx context.Context, id string) (string, error) {
	if m.GetHostedZoneFunc != nil {
		return m.GetHostedZoneFunc(ctx, id)
	}
	return "", nil
}
