package preflight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PowerPress/npk/internal/awsapi"
	"github.com/PowerPress/npk/internal/config"
)

// SpotRoleName is the service-linked role enabling EC2 spot fleets.
const SpotRoleName = "AWSServiceRoleForEC2Spot"

// State identifies a step of the gate's linear state machine.
type State string

// Gate states, in pipeline order. Failed is terminal; the pipeline never
// resumes from it.
const (
	StateInit                 State = "Init"
	StateSettingsValidated    State = "SettingsValidated"
	StateRegionsEnumerated    State = "RegionsEnumerated"
	StateQuotasAggregated     State = "QuotasAggregated"
	StateQuotaThresholdPassed State = "QuotaThresholdChecked"
	StateZonesAggregated      State = "ZonesAggregated"
	StateRoleChecked          State = "RoleChecked"
	StateDNSChecked           State = "DnsChecked"
	StateSnapshotReady        State = "SnapshotReady"
	StateFailed               State = "Failed"
)

// Confirmer collects an explicit yes/no acknowledgment from the operator.
// The gate itself performs no terminal I/O.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// singleUnitPrompt is shown when the account's best spot quota is exactly
// one instance.
const singleUnitPrompt = "The highest spot quota in your account allows a single GPU instance. Campaigns will be limited to one node. Deploy anyway?"

// Gate sequences the preflight pipeline: settings validation, region
// enumeration, the two aggregation fan-outs, threshold checks, and the role
// and DNS side checks. On success it emits the immutable settings snapshot
// for the template stage.
type Gate struct {
	api       awsapi.CloudAPI
	catalog   *config.Catalog
	confirmer Confirmer
	cache     ProbeCache
	observer  Observer

	mu    sync.Mutex
	state State
}

// NewGate creates a gate. cache may be nil to disable probe caching.
func NewGate(api awsapi.CloudAPI, catalog *config.Catalog, confirmer Confirmer, cache ProbeCache, observer Observer) *Gate {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Gate{
		api:       api,
		catalog:   catalog,
		confirmer: confirmer,
		cache:     cache,
		observer:  observer,
		state:     StateInit,
	}
}

// State returns the gate's current state. Safe to call while Run is in
// flight, so a progress display can poll it.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) setState(state State) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
}

func (g *Gate) fail(err error) error {
	g.setState(StateFailed)
	return err
}

// Run executes the pipeline against a raw settings document and returns the
// validated snapshot, or the first fatal error. No remote probe is issued
// before the settings document passes validation.
func (g *Gate) Run(ctx context.Context, rawSettings []byte) (*Snapshot, error) {
	settings, err := config.Parse(rawSettings)
	if err != nil {
		return nil, g.fail(err)
	}
	g.setState(StateSettingsValidated)

	snapshot := &Snapshot{Settings: *settings}

	providerRegions, err := EnumerateRegions(ctx, g.api)
	if err != nil {
		return nil, g.fail(err)
	}
	if len(providerRegions) == 0 {
		return nil, g.fail(fmt.Errorf("region enumeration returned no usable regions"))
	}
	g.setState(StateRegionsEnumerated)
	snapshot.ProviderRegions = providerRegions
	g.observer.Printf("enumerated %d regions", len(providerRegions))

	codes := g.catalog.QuotaCodes()
	g.observer.Printf("surveying spot quotas (%s) across %d regions", strings.Join(codes, ", "), len(providerRegions))
	quotaSurvey := AggregateQuotas(ctx, g.api, providerRegions, codes, g.cache, g.observer)
	g.setState(StateQuotasAggregated)
	snapshot.Quotas = quotaSurvey.Quotas
	snapshot.MaxQuota = quotaSurvey.MaxQuota
	g.recordSkips(snapshot, quotaSurvey.SkippedRegions, "quota")

	if err := g.checkQuotaThreshold(ctx, snapshot); err != nil {
		return nil, g.fail(err)
	}
	g.setState(StateQuotaThresholdPassed)

	// Zone probes are spent only on regions that showed usable quota.
	usable := make([]string, 0, len(quotaSurvey.Quotas))
	for region := range quotaSurvey.Quotas {
		usable = append(usable, region)
	}
	sort.Strings(usable)

	zoneSurvey := AggregateZones(ctx, g.api, usable, g.cache, g.observer)
	g.setState(StateZonesAggregated)
	snapshot.Regions = zoneSurvey.Regions
	g.recordSkips(snapshot, zoneSurvey.SkippedRegions, "zone")

	// Side checks; order-insensitive relative to each other.
	exists, err := g.api.RoleExists(ctx, SpotRoleName)
	if err != nil {
		// Role absence, however reported, is a recorded outcome.
		g.warn(snapshot, "spot role lookup failed, assuming absent: %v", err)
		exists = false
	}
	snapshot.SpotRoleExists = exists
	g.setState(StateRoleChecked)
	if !exists {
		g.observer.Printf("service-linked role %s not found; the template stage will create it", SpotRoleName)
	}

	if settings.Route53Zone != "" {
		name, err := g.api.GetHostedZone(ctx, settings.Route53Zone)
		if err != nil {
			return nil, g.fail(fmt.Errorf("requested DNS zone %s could not be resolved: %w", settings.Route53Zone, err))
		}
		snapshot.DNSBaseName = strings.TrimSuffix(name, ".")
		g.observer.Printf("resolved DNS zone %s to %s", settings.Route53Zone, snapshot.DNSBaseName)
	}
	g.setState(StateDNSChecked)

	snapshot.GeneratedAt = time.Now().UTC()
	g.setState(StateSnapshotReady)
	return snapshot, nil
}

// checkQuotaThreshold applies the tiered quota gate to the aggregated
// maximum: 0 is a hard stop, exactly 1 needs explicit confirmation, below
// the minimum is a hard stop, below the recommended level is a warning.
func (g *Gate) checkQuotaThreshold(ctx context.Context, snapshot *Snapshot) error {
	switch max := snapshot.MaxQuota; {
	case max == 0:
		return &ZeroQuotaError{Codes: g.catalog.QuotaCodes()}

	case max == 1:
		ok, err := g.confirmer.Confirm(ctx, singleUnitPrompt)
		if err != nil || !ok {
			return &ConfirmationRequiredError{}
		}
		g.warn(snapshot, "proceeding with a single-instance spot quota on operator confirmation")

	case max < MinimumQuota:
		return &BelowMinimumQuotaError{Max: max}

	case max < RecommendedQuota:
		g.warn(snapshot, "maximum observed spot quota is %g, below the recommended %d; large campaigns will be capped", max, RecommendedQuota)
	}
	return nil
}

func (g *Gate) recordSkips(snapshot *Snapshot, skipped []string, kind string) {
	if len(skipped) == 0 {
		return
	}
	snapshot.Incomplete = true
	g.warn(snapshot, "%s survey incomplete, skipped regions: %s", kind, strings.Join(skipped, ", "))
}

func (g *Gate) warn(snapshot *Snapshot, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	snapshot.Warnings = append(snapshot.Warnings, message)
	g.observer.Warnf("%s", message)
}
