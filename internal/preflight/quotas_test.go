package preflight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PowerPress/npk/internal/awsapi"
)

var trackedCodes = []string{"L-3819A6DF", "L-7212CCBC"}

func TestAggregateQuotas_FiltersAndComputesMax(t *testing.T) {
	api := &awsapi.MockClient{
		ListSpotQuotasFunc: func(_ context.Context, region string) ([]awsapi.Quota, error) {
			switch region {
			case "us-east-1":
				return []awsapi.Quota{
					{Code: "L-3819A6DF", Value: 8},
					{Code: "L-7212CCBC", Value: 0},   // zero is not recorded
					{Code: "L-UNRELATED", Value: 96}, // untracked code ignored
				}, nil
			case "us-west-2":
				return []awsapi.Quota{{Code: "L-7212CCBC", Value: 16}}, nil
			default:
				return nil, nil
			}
		},
	}

	survey := AggregateQuotas(context.Background(), api, []string{"us-east-1", "us-west-2"}, trackedCodes, nil, NopObserver{})

	assert.Equal(t, map[string]map[string]float64{
		"us-east-1": {"L-3819A6DF": 8},
		"us-west-2": {"L-7212CCBC": 16},
	}, survey.Quotas)
	assert.Equal(t, float64(16), survey.MaxQuota)
	assert.Empty(t, survey.SkippedRegions)
}

func TestAggregateQuotas_RegionWithoutPositiveQuotaIsDropped(t *testing.T) {
	api := &awsapi.MockClient{
		ListSpotQuotasFunc: func(_ context.Context, region string) ([]awsapi.Quota, error) {
			if region == "us-east-1" {
				return []awsapi.Quota{{Code: "L-3819A6DF", Value: 8}}, nil
			}
			return []awsapi.Quota{}, nil
		},
	}

	survey := AggregateQuotas(context.Background(), api, []string{"us-east-1", "us-west-2"}, trackedCodes, nil, NopObserver{})

	require.Contains(t, survey.Quotas, "us-east-1")
	assert.NotContains(t, survey.Quotas, "us-west-2")
	assert.Equal(t, float64(8), survey.MaxQuota)
}

func TestAggregateQuotas_EmptyInputsYieldZeroMax(t *testing.T) {
	survey := AggregateQuotas(context.Background(), &awsapi.MockClient{}, nil, trackedCodes, nil, NopObserver{})

	assert.Empty(t, survey.Quotas)
	assert.Zero(t, survey.MaxQuota)
}

func TestAggregateQuotas_FailedRegionIsSkippedNotFatal(t *testing.T) {
	api := &awsapi.MockClient{
		ListSpotQuotasFunc: func(_ context.Context, region string) ([]awsapi.Quota, error) {
			if region == "eu-west-1" {
				return nil, &awsapi.ProbeError{Op: "list-quotas", Region: region, Err: errors.New("throttled")}
			}
			return []awsapi.Quota{{Code: "L-3819A6DF", Value: 4}}, nil
		},
	}

	survey := AggregateQuotas(context.Background(), api, []string{"us-east-1", "eu-west-1"}, trackedCodes, nil, NopObserver{})

	assert.Equal(t, []string{"eu-west-1"}, survey.SkippedRegions)
	assert.Contains(t, survey.Quotas, "us-east-1")
	assert.Equal(t, float64(4), survey.MaxQuota)
}

type fakeCache struct {
	quotas map[string]map[string]float64
	zones  map[string][]string

	quotaPuts map[string]map[string]float64
	zonePuts  map[string][]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		quotas:    map[string]map[string]float64{},
		zones:     map[string][]string{},
		quotaPuts: map[string]map[string]float64{},
		zonePuts:  map[string][]string{},
	}
}

func (f *fakeCache) GetQuotas(region string) (map[string]float64, bool) {
	q, ok := f.quotas[region]
	return q, ok
}

func (f *fakeCache) PutQuotas(region string, quotas map[string]float64) {
	f.quotaPuts[region] = quotas
}

func (f *fakeCache) GetZones(region string) ([]string, bool) {
	z, ok := f.zones[region]
	return z, ok
}

func (f *fakeCache) PutZones(region string, zones []string) {
	f.zonePuts[region] = zones
}

func TestAggregateQuotas_CacheHitSkipsProbe(t *testing.T) {
	var probes int
	api := &awsapi.MockClient{
		ListSpotQuotasFunc: func(_ context.Context, _ string) ([]awsapi.Quota, error) {
			probes++
			return []awsapi.Quota{{Code: "L-3819A6DF", Value: 8}}, nil
		},
	}
	cache := newFakeCache()
	cache.quotas["us-east-1"] = map[string]float64{"L-3819A6DF": 32}
	cache.quotas["ap-south-1"] = map[string]float64{} // cached "nothing usable"

	survey := AggregateQuotas(context.Background(), api, []string{"us-east-1", "ap-south-1", "us-west-2"}, trackedCodes, cache, NopObserver{})

	assert.Equal(t, 1, probes)
	assert.Equal(t, float64(32), survey.MaxQuota)
	assert.NotContains(t, survey.Quotas, "ap-south-1")
	// Only the probed region is written back.
	assert.Contains(t, cache.quotaPuts, "us-west-2")
	assert.NotContains(t, cache.quotaPuts, "us-east-1")
}
