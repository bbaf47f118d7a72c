package domain

import (
	"slices"
	"strings"
)

type Severity int

const (
	SeverityHigh Severity = iota
	SeverityLow
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	default:
		return "high"
	}
}

// ParseSeverity maps the severity strings carried by audit reports and
// operational events onto the enum. Unknown values default to high so a
// malformed report never silently downgrades an alert.
func ParseSeverity(raw string) Severity {
	if strings.EqualFold(raw, "low") {
		return SeverityLow
	}
	return SeverityHigh
}

// Finding is the canonical output of an analyser or event adapter: the
// compliance state of one audited item. An empty Findings list means the
// item is fully compliant. Findings is kept sorted and de-duplicated so
// two values describing the same state compare equal regardless of the
// order checks ran in.
type Finding struct {
	Severity           Severity
	ComplianceItemType string
	Item               string
	Findings           []string
	Description        string
	Account            *Account
	RegionName         string
}

// NewFinding normalises the violation set (sorted, distinct) at
// construction time; a Finding is never mutated afterwards.
func NewFinding(itemType, item string, findings []string) Finding {
	return Finding{
		ComplianceItemType: itemType,
		Item:               item,
		Findings:           normalise(findings),
	}
}

func normalise(findings []string) []string {
	if len(findings) == 0 {
		return nil
	}
	out := slices.Clone(findings)
	slices.Sort(out)
	return slices.Compact(out)
}

// WithSeverity returns a copy with the given severity.
func (f Finding) WithSeverity(s Severity) Finding {
	f.Severity = s
	return f
}

// WithDescription returns a copy with the given free-text description.
func (f Finding) WithDescription(d string) Finding {
	f.Description = d
	return f
}

// WithAccount returns a copy attributed to the given account.
func (f Finding) WithAccount(a Account) Finding {
	f.Account = &a
	return f
}

// WithRegion returns a copy attributed to the given region.
func (f Finding) WithRegion(region string) Finding {
	f.RegionName = region
	return f
}

func (f Finding) Equal(other Finding) bool {
	if f.Severity != other.Severity ||
		f.ComplianceItemType != other.ComplianceItemType ||
		f.Item != other.Item ||
		f.Description != other.Description ||
		f.RegionName != other.RegionName {
		return false
	}
	if (f.Account == nil) != (other.Account == nil) {
		return false
	}
	if f.Account != nil && *f.Account != *other.Account {
		return false
	}
	return slices.Equal(normalise(f.Findings), normalise(other.Findings))
}

// JoinedFindings renders the violation set in its stable display order.
func (f Finding) JoinedFindings() string {
	return strings.Join(normalise(f.Findings), "\n")
}

// SortKey gives findings a deterministic order for delivery and logs.
func (f Finding) SortKey() string {
	accountID := ""
	if f.Account != nil {
		accountID = f.Account.Identifier
	}
	return strings.Join([]string{f.ComplianceItemType, f.Item, accountID, f.RegionName}, "\x00")
}
