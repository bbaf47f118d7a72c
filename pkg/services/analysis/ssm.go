package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const itemTypeSsmDocument = "ssm_document"

type ssmResults struct {
	Documents []ssmDocument `json:"documents"`
}

type ssmDocument struct {
	Name      string `json:"name"`
	Compliant bool   `json:"compliant"`
}

// SsmAnalyser reports SSM documents whose precomputed compliance flag
// is false.
type SsmAnalyser struct{}

func NewSsmAnalyser() *SsmAnalyser {
	return &SsmAnalyser{}
}

func (a *SsmAnalyser) Analyse(_ context.Context, audit domain.Audit) ([]domain.Finding, error) {
	var findings []domain.Finding
	for _, raw := range audit.Report {
		block, err := decodeBlock(raw, audit.Type)
		if err != nil {
			return nil, err
		}

		var results ssmResults
		if err := json.Unmarshal(block.Results, &results); err != nil {
			return nil, fmt.Errorf("failed to decode %s results: %w", audit.Type, err)
		}

		for _, doc := range results.Documents {
			var violations []string
			if !doc.Compliant {
				violations = []string{fmt.Sprintf("SSM document compliance check failed: compliant is %t", doc.Compliant)}
			}
			finding := domain.NewFinding(itemTypeSsmDocument, doc.Name, violations).
				WithAccount(block.Account.toDomain()).
				WithRegion(block.Region)
			findings = append(findings, finding)
		}
	}
	return findings, nil
}
