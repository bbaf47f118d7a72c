package domain

import "slices"

// FilterConfig suppresses findings for one named item. Reason is
// documentation for operators and is never evaluated.
type FilterConfig struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// MappingConfig routes findings matching its criteria to a channel and,
// optionally, a PagerDuty service. Each criterion is a wildcard when
// empty; a mapping with all three empty is a catch-all.
type MappingConfig struct {
	Channel             string   `json:"channel"`
	PagerDutyService    string   `json:"pagerduty_service,omitempty"`
	Accounts            []string `json:"accounts,omitempty"`
	Items               []string `json:"items,omitempty"`
	ComplianceItemTypes []string `json:"compliance_item_types,omitempty"`
}

// Matches reports whether every non-empty criterion matches the finding.
func (m MappingConfig) Matches(f Finding) bool {
	if len(m.Accounts) > 0 {
		if f.Account == nil || !slices.Contains(m.Accounts, f.Account.Identifier) {
			return false
		}
	}
	if len(m.Items) > 0 && !slices.Contains(m.Items, f.Item) {
		return false
	}
	if len(m.ComplianceItemTypes) > 0 && !slices.Contains(m.ComplianceItemTypes, f.ComplianceItemType) {
		return false
	}
	return true
}
