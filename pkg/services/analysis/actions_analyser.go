package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

type enforcementResults struct {
	Actions []reportAction `json:"enforcement_actions"`
}

type reportAction struct {
	Description string            `json:"description"`
	Details     map[string]string `json:"details"`
	Status      string            `json:"status"`
}

func (a reportAction) toDomain() domain.Action {
	return domain.Action{Description: a.Description, Details: a.Details, Status: a.Status}
}

// ActionsAnalyser handles report types that express per-account
// compliance as a list of enforcement actions (VPC flow logs, password
// policy). The label parameterises the rendered descriptions; the item
// type tags the resulting findings.
type ActionsAnalyser struct {
	itemType string
	label    string
}

func NewActionsAnalyser(itemType, label string) *ActionsAnalyser {
	return &ActionsAnalyser{itemType: itemType, label: label}
}

func (a *ActionsAnalyser) Analyse(_ context.Context, audit domain.Audit) ([]domain.Finding, error) {
	findings := make([]domain.Finding, 0, len(audit.Report))
	for _, raw := range audit.Report {
		block, err := decodeBlock(raw, audit.Type)
		if err != nil {
			return nil, err
		}

		var results enforcementResults
		if err := json.Unmarshal(block.Results, &results); err != nil {
			return nil, fmt.Errorf("failed to decode %s results: %w", audit.Type, err)
		}

		actions := make([]domain.Action, 0, len(results.Actions))
		for _, action := range results.Actions {
			actions = append(actions, action.toDomain())
		}

		outcome := EvaluateActions(a.label, actions)
		finding := domain.NewFinding(a.itemType, block.Account.Identifier, outcome.Findings).
			WithDescription(outcome.Description).
			WithAccount(block.Account.toDomain()).
			WithRegion(block.Region)
		findings = append(findings, finding)
	}
	return findings, nil
}
