package events

import (
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const DetailTypeCodeBuild = "CodeBuild Build State Change"

type codeBuildDetail struct {
	ProjectName           string `json:"project-name"`
	BuildStatus           string `json:"build-status"`
	AdditionalInformation struct {
		Logs struct {
			DeepLink string `json:"deep-link"`
		} `json:"logs"`
	} `json:"additional-information"`
}

// CodeBuildAdapter reports failed builds. Successful builds produce an
// empty finding, which the filter drops.
type CodeBuildAdapter struct{}

func NewCodeBuildAdapter() *CodeBuildAdapter {
	return &CodeBuildAdapter{}
}

func (a *CodeBuildAdapter) Finding(event Event) (domain.Finding, error) {
	var detail codeBuildDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return domain.Finding{}, fmt.Errorf("failed to decode codebuild event: %w", err)
	}

	var violations []string
	if detail.BuildStatus != "SUCCEEDED" {
		violations = []string{fmt.Sprintf(
			"build %s for project %s\n%s",
			detail.BuildStatus, detail.ProjectName, detail.AdditionalInformation.Logs.DeepLink,
		)}
	}

	return domain.NewFinding("codebuild", detail.ProjectName, violations).
		WithAccount(domain.NewAccount(event.Account, "")).
		WithRegion(event.Region), nil
}
