package preflight

import (
	"time"

	"github.com/PowerPress/npk/internal/config"
)

// Snapshot is the validated settings document handed to the template stage.
// It is assembled incrementally by the gate and never mutated after the
// pipeline reaches SnapshotReady.
type Snapshot struct {
	// Settings carries the opaque pass-through values from the settings
	// document.
	Settings config.Settings `json:"settings"`

	// DNSBaseName is the resolved hosted-zone name without its trailing
	// root label. Present iff route53Zone was requested.
	DNSBaseName string `json:"dnsBaseName,omitempty"`

	// ProviderRegions is the full discoverable region set, in provider
	// order.
	ProviderRegions []string `json:"providerRegions"`

	// Quotas maps region -> quota code -> value. Sparse: an absent
	// region/code pair means no positive quota was observed there.
	Quotas map[string]map[string]float64 `json:"quotas"`

	// MaxQuota is the single highest quota value observed across all
	// regions and codes.
	MaxQuota float64 `json:"maxQuota"`

	// Regions maps region -> available zones, populated only for regions
	// that passed quota gating.
	Regions map[string][]string `json:"regions"`

	// SpotRoleExists records whether the EC2 spot service-linked role was
	// found. A missing role is a valid outcome the template stage acts on.
	SpotRoleExists bool `json:"spotRoleExists"`

	// Warnings lists the non-fatal conditions recorded during the run.
	Warnings []string `json:"warnings,omitempty"`

	// Incomplete is set when one or more region probes were skipped, so
	// the quota and zone tables may understate account capability.
	Incomplete bool `json:"incomplete,omitempty"`

	// GeneratedAt is the completion time of the preflight run.
	GeneratedAt time.Time `json:"generatedAt"`
}
