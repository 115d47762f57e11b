package preflight

// ProbeCache is an optional store of previous probe results the pipeline may
// consult before issuing network calls and populate afterwards. Lookups and
// stores must never fail the pipeline; implementations downgrade their own
// errors to misses.
type ProbeCache interface {
	// GetQuotas returns the cached positive-quota table for a region.
	// ok is false on a miss. An ok result with an empty map is a valid
	// cached "no usable quota here" answer.
	GetQuotas(region string) (quotas map[string]float64, ok bool)

	// PutQuotas stores the positive-quota table observed for a region.
	PutQuotas(region string, quotas map[string]float64)

	// GetZones returns the cached available-zone list for a region.
	GetZones(region string) (zones []string, ok bool)

	// PutZones stores the available zones observed for a region.
	PutZones(region string, zones []string)
}
