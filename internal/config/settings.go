// Package config handles the npk settings document and the hardware-family
// catalog. The settings document is a flat key/value file supplied by the
// operator; every key must be on the allow-list or the whole document is
// rejected.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// Settings holds the operator-supplied deployment settings.
//
// Only awsProfile and route53Zone are interpreted by the preflight pipeline
// itself; the remaining fields are carried through into the snapshot for the
// template stage.
type Settings struct {
	AWSProfile        string  `mapstructure:"awsProfile" json:"awsProfile,omitempty"`
	Route53Zone       string  `mapstructure:"route53Zone" json:"route53Zone,omitempty"`
	PrimaryRegion     string  `mapstructure:"primaryRegion" json:"primaryRegion,omitempty"`
	Georestrictions   string  `mapstructure:"georestrictions" json:"georestrictions,omitempty"`
	CampaignDataTTL   int64   `mapstructure:"campaign_data_ttl" json:"campaign_data_ttl,omitempty"`
	CampaignMaxPrice  float64 `mapstructure:"campaign_max_price" json:"campaign_max_price,omitempty"`
	CriticalEventsSMS string  `mapstructure:"criticalEventsSMS" json:"criticalEventsSMS,omitempty"`
	AdminEmail        string  `mapstructure:"adminEmail" json:"adminEmail,omitempty"`
	SAMLMetadataFile  string  `mapstructure:"sAMLMetadataFile" json:"sAMLMetadataFile,omitempty"`
	SAMLMetadataURL   string  `mapstructure:"sAMLMetadataUrl" json:"sAMLMetadataUrl,omitempty"`
}

// allowedKeys is the fixed allow-list of settings keys. Any key outside this
// set invalidates the entire document.
var allowedKeys = map[string]bool{
	"awsProfile":         true,
	"route53Zone":        true,
	"primaryRegion":      true,
	"georestrictions":    true,
	"campaign_data_ttl":  true,
	"campaign_max_price": true,
	"criticalEventsSMS":  true,
	"adminEmail":         true,
	"sAMLMetadataFile":   true,
	"sAMLMetadataUrl":    true,
}

// InvalidSettingsError reports every unrecognized key found in a settings
// document. The document is rejected as a whole; unknown keys are never
// silently dropped.
type InvalidSettingsError struct {
	Keys []string
}

// Error implements the error interface.
func (e *InvalidSettingsError) Error() string {
	return fmt.Sprintf("unrecognized settings: %s", strings.Join(e.Keys, ", "))
}

// Remediation returns an actionable hint for the operator.
func (e *InvalidSettingsError) Remediation() string {
	return fmt.Sprintf("remove the unrecognized keys (%s) from the settings file; valid keys are: %s",
		strings.Join(e.Keys, ", "), strings.Join(AllowedKeys(), ", "))
}

// AllowedKeys returns the allow-list in sorted order, for diagnostics.
func AllowedKeys() []string {
	keys := make([]string, 0, len(allowedKeys))
	for k := range allowedKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkKeys returns the sorted set of keys in raw that are not on the
// allow-list.
func checkKeys(raw map[string]interface{}) []string {
	var violations []string
	for k := range raw {
		if !allowedKeys[k] {
			violations = append(violations, k)
		}
	}
	sort.Strings(violations)
	return violations
}
