package notification

import (
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

// FindingsFilter drops findings that have nothing to report and findings
// whose item is explicitly suppressed by configuration. Pure and
// idempotent: re-filtering an already-filtered set is a no-op.
type FindingsFilter struct {
	suppressed map[string]struct{}
}

func NewFindingsFilter(filters []domain.FilterConfig) *FindingsFilter {
	suppressed := make(map[string]struct{}, len(filters))
	for _, filter := range filters {
		suppressed[filter.Item] = struct{}{}
	}
	return &FindingsFilter{suppressed: suppressed}
}

func (f *FindingsFilter) Apply(findings []domain.Finding) []domain.Finding {
	kept := make([]domain.Finding, 0, len(findings))
	for _, finding := range findings {
		if len(finding.Findings) == 0 {
			continue
		}
		if _, ok := f.suppressed[finding.Item]; ok {
			continue
		}
		kept = append(kept, finding)
	}
	return kept
}
