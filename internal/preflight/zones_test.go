package preflight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PowerPress/npk/internal/awsapi"
)

func TestAggregateZones_KeepsOnlyAvailable(t *testing.T) {
	api := &awsapi.MockClient{
		ListAvailabilityZonesFunc: func(_ context.Context, region string) ([]awsapi.Zone, error) {
			return []awsapi.Zone{
				{Name: region + "a", State: "available"},
				{Name: region + "b", State: "impaired"},
				{Name: region + "c", State: "available"},
			}, nil
		},
	}

	survey := AggregateZones(context.Background(), api, []string{"us-east-1"}, nil, NopObserver{})

	assert.Equal(t, map[string][]string{
		"us-east-1": {"us-east-1a", "us-east-1c"},
	}, survey.Regions)
}

func TestAggregateZones_FailedRegionIsSkipped(t *testing.T) {
	api := &awsapi.MockClient{
		ListAvailabilityZonesFunc: func(_ context.Context, region string) ([]awsapi.Zone, error) {
			if region == "us-west-2" {
				return nil, errors.New("timeout")
			}
			return []awsapi.Zone{{Name: region + "a", State: "available"}}, nil
		},
	}

	survey := AggregateZones(context.Background(), api, []string{"us-east-1", "us-west-2"}, nil, NopObserver{})

	assert.Equal(t, []string{"us-west-2"}, survey.SkippedRegions)
	assert.Contains(t, survey.Regions, "us-east-1")
	assert.NotContains(t, survey.Regions, "us-west-2")
}

func TestAggregateZones_CacheHitSkipsProbe(t *testing.T) {
	var probes int
	api := &awsapi.MockClient{
		ListAvailabilityZonesFunc: func(_ context.Context, region string) ([]awsapi.Zone, error) {
			probes++
			return []awsapi.Zone{{Name: region + "a", State: "available"}}, nil
		},
	}
	cache := newFakeCache()
	cache.zones["us-east-1"] = []string{"us-east-1a", "us-east-1b"}

	survey := AggregateZones(context.Background(), api, []string{"us-east-1", "us-west-2"}, cache, NopObserver{})

	assert.Equal(t, 1, probes)
	assert.Equal(t, []string{"us-east-1a", "us-east-1b"}, survey.Regions["us-east-1"])
	assert.Contains(t, cache.zonePuts, "us-west-2")
}
