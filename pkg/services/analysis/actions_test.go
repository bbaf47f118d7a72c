package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

func TestEvaluateActions_NoActions(t *testing.T) {
	outcome := EvaluateActions("VPC flow logs", nil)

	assert.Equal(t, "VPC flow logs compliance is met", outcome.Description)
	assert.Empty(t, outcome.Findings)
}

func TestEvaluateActions_AllApplied(t *testing.T) {
	outcome := EvaluateActions("VPC flow logs", []domain.Action{
		{Description: "create flow log", Status: "applied"},
		{Description: "tag vpc", Details: map[string]string{"vpc": "vpc-1234"}, Status: "applied"},
	})

	assert.Equal(t, "VPC flow logs compliance enforcement success", outcome.Description)
	assert.Equal(t, []string{"applied: create flow log, tag vpc (vpc: vpc-1234)"}, outcome.Findings)
}

func TestEvaluateActions_FailureTakesPriorityOverSuccess(t *testing.T) {
	// one failed among applied actions must land in the failure branch,
	// never the all-applied one
	outcome := EvaluateActions("password policy", []domain.Action{
		{Description: "set minimum length", Status: "applied"},
		{Description: "enable rotation", Status: "failed: access denied"},
	})

	assert.Equal(t, "password policy compliance enforcement failure", outcome.Description)
	assert.Equal(t, []string{
		"applied: set minimum length\nfailed: enable rotation (failed: access denied)",
	}, outcome.Findings)
}

func TestEvaluateActions_RequiredButNotApplied(t *testing.T) {
	outcome := EvaluateActions("VPC flow logs", []domain.Action{
		{Description: "create flow log"},
		{Description: "create log group", Details: map[string]string{"region": "eu-west-2"}},
	})

	assert.Equal(t, "VPC flow logs compliance is not met", outcome.Description)
	assert.Equal(t, []string{"required: create flow log, create log group (region: eu-west-2)"}, outcome.Findings)
}

func TestEvaluateActions_MixedAppliedAndRequired(t *testing.T) {
	// not all applied and nothing failed: compliance is not met
	outcome := EvaluateActions("VPC flow logs", []domain.Action{
		{Description: "create flow log", Status: "applied"},
		{Description: "create log group"},
	})

	assert.Equal(t, "VPC flow logs compliance is not met", outcome.Description)
	assert.Equal(t, []string{"required: create log group"}, outcome.Findings)
}
