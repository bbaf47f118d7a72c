package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

func TestFindingsFilter_DropsCompliantAndSuppressed(t *testing.T) {
	findings := []domain.Finding{
		domain.NewFinding("s3_bucket", "compliant-bucket", nil),
		domain.NewFinding("s3_bucket", "noisy-bucket", []string{"bucket should be encrypted"}),
		domain.NewFinding("s3_bucket", "bad-bucket", []string{"bucket should be encrypted"}),
	}
	filters := []domain.FilterConfig{{Item: "noisy-bucket", Reason: "decommissioning"}}

	kept := NewFindingsFilter(filters).Apply(findings)

	assert.Equal(t, []domain.Finding{findings[2]}, kept)
}

func TestFindingsFilter_EmptyConfigIsIdentityOnReportable(t *testing.T) {
	findings := []domain.Finding{
		domain.NewFinding("vpc", "111122223333", []string{"required: create flow log"}),
	}

	kept := NewFindingsFilter(nil).Apply(findings)

	assert.Equal(t, findings, kept)
}

func TestFindingsFilter_Idempotent(t *testing.T) {
	findings := []domain.Finding{
		domain.NewFinding("s3_bucket", "a", []string{"bucket should be encrypted"}),
		domain.NewFinding("s3_bucket", "b", nil),
		domain.NewFinding("s3_bucket", "c", []string{"bucket should have mfa-delete"}),
	}
	filter := NewFindingsFilter([]domain.FilterConfig{{Item: "c"}})

	once := filter.Apply(findings)
	twice := filter.Apply(once)

	assert.Equal(t, once, twice)
}
