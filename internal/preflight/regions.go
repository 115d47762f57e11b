package preflight

import (
	"context"

	"github.com/PowerPress/npk/internal/awsapi"
)

// Opt-in statuses that make a region usable without further account action.
const (
	optInNotRequired = "opt-in-not-required"
	optedIn          = "opted-in"
)

// EnumerateRegions discovers the candidate regions for the account. Regions
// that require an opt-in the account has not performed are excluded. The
// provider's native ordering is preserved.
//
// Enumeration failure is fatal to the whole pipeline; there is no partial
// region set.
func EnumerateRegions(ctx context.Context, api awsapi.CloudAPI) ([]string, error) {
	regions, err := api.ListRegions(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, r := range regions {
		if r.OptInStatus == optInNotRequired || r.OptInStatus == optedIn {
			names = append(names, r.Name)
		}
	}
	return names, nil
}
