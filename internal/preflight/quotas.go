package preflight

import (
	"context"
	"time"

	"github.com/PowerPress/npk/internal/awsapi"
	"github.com/PowerPress/npk/internal/orchestration"
)

// probeTimeout bounds every per-region probe so one hanging call cannot
// stall a barrier join indefinitely.
const probeTimeout = 30 * time.Second

// QuotaSurvey is the merged outcome of the per-region quota fan-out.
type QuotaSurvey struct {
	// Quotas maps region -> quota code -> value. Only regions with at
	// least one positive tracked quota appear.
	Quotas map[string]map[string]float64

	// MaxQuota is the highest value across all regions and codes, or 0
	// when Quotas is empty.
	MaxQuota float64

	// SkippedRegions lists regions whose probe failed and were dropped
	// from the survey.
	SkippedRegions []string
}

// AggregateQuotas fans out one quota-list probe per region, then folds the
// settled results into a per-region quota table and the global maximum.
// Rows are kept only when their code is tracked and their value is positive;
// a zero value carries the same meaning as an absent row.
//
// A single region's probe failure does not fail the survey: the region is
// skipped with a warning and recorded in SkippedRegions. Callers decide what
// an incomplete survey means for them.
func AggregateQuotas(ctx context.Context, api awsapi.CloudAPI, regions, codes []string, cache ProbeCache, observer Observer) QuotaSurvey {
	tracked := make(map[string]bool, len(codes))
	for _, code := range codes {
		tracked[code] = true
	}

	survey := QuotaSurvey{Quotas: map[string]map[string]float64{}}

	// Resolve what we can from the cache; only the misses are probed.
	var probed []string
	for _, region := range regions {
		if cache != nil {
			if quotas, ok := cache.GetQuotas(region); ok {
				if len(quotas) > 0 {
					survey.Quotas[region] = quotas
				}
				continue
			}
		}
		probed = append(probed, region)
	}

	tasks := make([]orchestration.Task[[]awsapi.Quota], 0, len(probed))
	for _, region := range probed {
		region := region
		tasks = append(tasks, orchestration.Task[[]awsapi.Quota]{
			Name: region,
			Func: func(ctx context.Context) ([]awsapi.Quota, error) {
				ctx, cancel := context.WithTimeout(ctx, probeTimeout)
				defer cancel()
				return api.ListSpotQuotas(ctx, region)
			},
		})
	}

	for _, res := range orchestration.Gather(ctx, tasks, 0) {
		if res.Err != nil {
			observer.Warnf("skipping region %s: %v", res.Name, res.Err)
			survey.SkippedRegions = append(survey.SkippedRegions, res.Name)
			continue
		}

		quotas := map[string]float64{}
		for _, q := range res.Value {
			if tracked[q.Code] && q.Value > 0 {
				quotas[q.Code] = q.Value
			}
		}
		if cache != nil {
			cache.PutQuotas(res.Name, quotas)
		}
		if len(quotas) > 0 {
			survey.Quotas[res.Name] = quotas
		}
	}

	for _, quotas := range survey.Quotas {
		for _, value := range quotas {
			if value > survey.MaxQuota {
				survey.MaxQuota = value
			}
		}
	}

	return survey
}
