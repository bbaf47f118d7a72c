package analysis

import (
	"fmt"
	"strings"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

// ActionsOutcome is the result of evaluating the enforcement actions
// attached to one audited subject: a summary description and, unless the
// subject is fully compliant, a single aggregated violation line.
type ActionsOutcome struct {
	Description string
	Findings    []string
}

// EvaluateActions classifies an action list into exactly one of four
// outcomes, in priority order:
//
//  1. no actions: compliance is met
//  2. any action failed: enforcement failure
//  3. all actions applied: enforcement success
//  4. actions required but none applied: compliance is not met
//
// The same action list always lands in the first matching branch, even
// when a later branch's condition would also hold. Shared by every
// report type that expresses compliance as enforcement actions.
func EvaluateActions(label string, actions []domain.Action) ActionsOutcome {
	if len(actions) == 0 {
		return ActionsOutcome{Description: fmt.Sprintf("%s compliance is met", label)}
	}

	var applied, failed, required []string
	for _, action := range actions {
		switch {
		case action.HasFailed():
			failed = append(failed, action.DescribeFailure())
		case action.IsApplied():
			applied = append(applied, action.Describe())
		default:
			required = append(required, action.Describe())
		}
	}

	if len(failed) > 0 {
		return ActionsOutcome{
			Description: fmt.Sprintf("%s compliance enforcement failure", label),
			Findings: []string{fmt.Sprintf(
				"applied: %s\nfailed: %s",
				strings.Join(applied, ", "),
				strings.Join(failed, ", "),
			)},
		}
	}

	if len(required) == 0 {
		return ActionsOutcome{
			Description: fmt.Sprintf("%s compliance enforcement success", label),
			Findings:    []string{fmt.Sprintf("applied: %s", strings.Join(applied, ", "))},
		}
	}

	return ActionsOutcome{
		Description: fmt.Sprintf("%s compliance is not met", label),
		Findings:    []string{fmt.Sprintf("required: %s", strings.Join(required, ", "))},
	}
}
