package events

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

func batchOf(t *testing.T, bodies ...string) []byte {
	t.Helper()
	type record struct {
		Body string `json:"body"`
	}
	records := make([]record, 0, len(bodies))
	for _, body := range bodies {
		records = append(records, record{Body: body})
	}
	raw, err := json.Marshal(map[string]any{"Records": records})
	require.NoError(t, err)
	return raw
}

func processBatch(t *testing.T, bodies ...string) ([]domain.Finding, []PageAlert) {
	t.Helper()
	logger := zerolog.Nop()
	findings, alerts, err := NewDefaultRegistry().Process(&logger, batchOf(t, bodies...))
	require.NoError(t, err)
	return findings, alerts
}

func TestRegistry_CodeBuildFailure(t *testing.T) {
	findings, alerts := processBatch(t, `{
		"detail-type": "CodeBuild Build State Change",
		"account": "111122223333",
		"region": "eu-west-2",
		"detail": {
			"project-name": "main-build",
			"build-status": "FAILED",
			"additional-information": {"logs": {"deep-link": "https://console.example.com/logs"}}
		}
	}`)

	require.Len(t, findings, 1)
	assert.Equal(t, "codebuild", findings[0].ComplianceItemType)
	assert.Equal(t, "main-build", findings[0].Item)
	assert.Equal(t, []string{"build FAILED for project main-build\nhttps://console.example.com/logs"}, findings[0].Findings)
	assert.Equal(t, "111122223333", findings[0].Account.Identifier)
	assert.Empty(t, alerts)
}

func TestRegistry_CodeBuildSuccessIsCompliant(t *testing.T) {
	findings, _ := processBatch(t, `{
		"detail-type": "CodeBuild Build State Change",
		"account": "111122223333",
		"region": "eu-west-2",
		"detail": {"project-name": "main-build", "build-status": "SUCCEEDED"}
	}`)

	require.Len(t, findings, 1)
	assert.Empty(t, findings[0].Findings)
}

func TestRegistry_CodePipelineFailure(t *testing.T) {
	findings, _ := processBatch(t, `{
		"detail-type": "CodePipeline Pipeline Execution State Change",
		"account": "111122223333",
		"region": "eu-west-2",
		"detail": {"pipeline": "deploy", "state": "FAILED", "execution-id": "abc-123"}
	}`)

	require.Len(t, findings, 1)
	assert.Equal(t, "codepipeline", findings[0].ComplianceItemType)
	assert.Equal(t, []string{"pipeline deploy execution abc-123 has FAILED"}, findings[0].Findings)
}

func TestRegistry_UnknownDetailTypeSkipped(t *testing.T) {
	findings, alerts := processBatch(t, `{
		"detail-type": "Mystery Event",
		"detail": {}
	}`)

	assert.Empty(t, findings)
	assert.Empty(t, alerts)
}

func TestRegistry_HealthEventPagesWhenOpenIssue(t *testing.T) {
	findings, alerts := processBatch(t, `{
		"detail-type": "AWS Health Event",
		"account": "111122223333",
		"region": "eu-west-2",
		"detail": {
			"service": "EC2",
			"eventTypeCode": "AWS_EC2_OPERATIONAL_ISSUE",
			"eventTypeCategory": "issue",
			"statusCode": "open",
			"eventDescription": [{"language": "en_US", "latestDescription": "Increased API error rates"}],
			"affectedEntities": [{"entityValue": "i-0abc"}]
		}
	}`)

	require.Len(t, findings, 1)
	assert.Equal(t, "aws_health", findings[0].ComplianceItemType)
	assert.Equal(t, []string{"EC2 AWS_EC2_OPERATIONAL_ISSUE is open\nIncreased API error rates"}, findings[0].Findings)

	require.Len(t, alerts, 1)
	assert.Equal(t, "AWS_EC2_OPERATIONAL_ISSUE", alerts[0].Payload.Summary)
	assert.Equal(t, "EC2", alerts[0].Payload.Source)
	assert.Equal(t, "eu-west-2", alerts[0].Payload.Group)
	assert.Equal(t, "critical", alerts[0].Payload.Severity)
	assert.Equal(t, "i-0abc", alerts[0].Payload.CustomDetails["affected_entities"])
}

func TestRegistry_HealthScheduledChangeDoesNotPage(t *testing.T) {
	findings, alerts := processBatch(t, `{
		"detail-type": "AWS Health Event",
		"account": "111122223333",
		"region": "eu-west-2",
		"detail": {
			"service": "RDS",
			"eventTypeCode": "AWS_RDS_MAINTENANCE_SCHEDULED",
			"eventTypeCategory": "scheduledChange",
			"statusCode": "upcoming"
		}
	}`)

	require.Len(t, findings, 1)
	assert.Empty(t, alerts)
}

func TestRegistry_GrantUserAccess(t *testing.T) {
	findings, _ := processBatch(t, `{
		"detail-type": "GrantUserAccessLambda",
		"region": "eu-west-2",
		"detail": {"username": "jane.doe", "role": "RoleEngineer", "account": "111122223333", "hours": 8}
	}`)

	require.Len(t, findings, 1)
	assert.Equal(t, "grant_user_access", findings[0].ComplianceItemType)
	assert.Equal(t, domain.SeverityLow, findings[0].Severity)
	assert.Equal(t, []string{
		"jane.doe has been granted RoleEngineer access to account 111122223333 for 8 hours",
	}, findings[0].Findings)
}

func TestRegistry_MalformedBatchIsError(t *testing.T) {
	logger := zerolog.Nop()
	_, _, err := NewDefaultRegistry().Process(&logger, []byte(`not json`))
	assert.Error(t, err)
}
