// Package preflight implements the capability-discovery pipeline that gates
// deployment: settings validation, region enumeration, concurrent per-region
// quota and zone surveys, threshold checks, and the role and DNS lookups,
// ending in one immutable settings snapshot for the template stage.
//
// The pipeline fails fast: any fatal condition aborts before infrastructure
// is touched, and a partial snapshot is never emitted.
package preflight
