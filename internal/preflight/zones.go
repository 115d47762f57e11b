package preflight

import (
	"context"

	"github.com/PowerPress/npk/internal/awsapi"
	"github.com/PowerPress/npk/internal/orchestration"
)

// zoneStateAvailable is the only zone lifecycle state worth deploying into.
const zoneStateAvailable = "available"

// ZoneSurvey is the merged outcome of the per-region zone fan-out.
type ZoneSurvey struct {
	// Regions maps region -> available zone names.
	Regions map[string][]string

	// SkippedRegions lists regions whose probe failed.
	SkippedRegions []string
}

// AggregateZones fans out one zone-list probe per region and folds the
// settled results into a per-region zone table, keeping only zones in the
// "available" state. The input must already be restricted to regions that
// passed quota gating; regions with zero usable quota never reach here.
//
// The failure policy mirrors AggregateQuotas: a failed region is skipped
// with a warning.
func AggregateZones(ctx context.Context, api awsapi.CloudAPI, regions []string, cache ProbeCache, observer Observer) ZoneSurvey {
	survey := ZoneSurvey{Regions: map[string][]string{}}

	var probed []string
	for _, region := range regions {
		if cache != nil {
			if zones, ok := cache.GetZones(region); ok {
				survey.Regions[region] = zones
				continue
			}
		}
		probed = append(probed, region)
	}

	tasks := make([]orchestration.Task[[]awsapi.Zone], 0, len(probed))
	for _, region := range probed {
		region := region
		tasks = append(tasks, orchestration.Task[[]awsapi.Zone]{
			Name: region,
			Func: func(ctx context.Context) ([]awsapi.Zone, error) {
				ctx, cancel := context.WithTimeout(ctx, probeTimeout)
				defer cancel()
				return api.ListAvailabilityZones(ctx, region)
			},
		})
	}

	for _, res := range orchestration.Gather(ctx, tasks, 0) {
		if res.Err != nil {
			observer.Warnf("skipping zones for region %s: %v", res.Name, res.Err)
			survey.SkippedRegions = append(survey.SkippedRegions, res.Name)
			continue
		}

		var zones []string
		for _, z := range res.Value {
			if z.State == zoneStateAvailable {
				zones = append(zones, z.Name)
			}
		}
		if cache != nil {
			cache.PutZones(res.Name, zones)
		}
		survey.Regions[res.Name] = zones
	}

	return survey
}
