package events

import (
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const DetailTypeCodePipeline = "CodePipeline Pipeline Execution State Change"

type codePipelineDetail struct {
	Pipeline    string `json:"pipeline"`
	State       string `json:"state"`
	ExecutionID string `json:"execution-id"`
}

// CodePipelineAdapter reports failed pipeline executions.
type CodePipelineAdapter struct{}

func NewCodePipelineAdapter() *CodePipelineAdapter {
	return &CodePipelineAdapter{}
}

func (a *CodePipelineAdapter) Finding(event Event) (domain.Finding, error) {
	var detail codePipelineDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return domain.Finding{}, fmt.Errorf("failed to decode codepipeline event: %w", err)
	}

	var violations []string
	if detail.State == "FAILED" {
		violations = []string{fmt.Sprintf(
			"pipeline %s execution %s has %s", detail.Pipeline, detail.ExecutionID, detail.State,
		)}
	}

	return domain.NewFinding("codepipeline", detail.Pipeline, violations).
		WithAccount(domain.NewAccount(event.Account, "")).
		WithRegion(event.Region), nil
}
