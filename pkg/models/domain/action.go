package domain

import (
	"fmt"
	"slices"
	"strings"
)

const actionStatusApplied = "applied"

// Action is one remediation action taken or required against a resource,
// as reported by an audit. An empty Status means the action has not been
// applied yet; a status of "applied" means it has; anything else is an
// enforcement failure reason (e.g. "failed: access denied").
type Action struct {
	Description string
	Details     map[string]string
	Status      string
}

func (a Action) IsApplied() bool {
	return a.Status == actionStatusApplied
}

func (a Action) HasFailed() bool {
	return a.Status != "" && a.Status != actionStatusApplied
}

// Describe renders the action for inclusion in a finding, appending the
// detail context in sorted key order when present.
func (a Action) Describe() string {
	if len(a.Details) == 0 {
		return a.Description
	}
	keys := make([]string, 0, len(a.Details))
	for k := range a.Details {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, a.Details[k]))
	}
	return fmt.Sprintf("%s (%s)", a.Description, strings.Join(parts, ", "))
}

// DescribeFailure renders a failed action with its failure reason.
func (a Action) DescribeFailure() string {
	return fmt.Sprintf("%s (%s)", a.Description, a.Status)
}
