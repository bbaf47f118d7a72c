package events

import (
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const DetailTypeGrantUserAccess = "GrantUserAccessLambda"

type grantUserAccessDetail struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Account  string `json:"account"`
	Hours    int    `json:"hours"`
}

// GrantUserAccessAdapter reports temporary access grants so they are
// visible in the team channel.
type GrantUserAccessAdapter struct{}

func NewGrantUserAccessAdapter() *GrantUserAccessAdapter {
	return &GrantUserAccessAdapter{}
}

func (a *GrantUserAccessAdapter) Finding(event Event) (domain.Finding, error) {
	var detail grantUserAccessDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return domain.Finding{}, fmt.Errorf("failed to decode grant user access event: %w", err)
	}

	message := fmt.Sprintf(
		"%s has been granted %s access to account %s for %d hours",
		detail.Username, detail.Role, detail.Account, detail.Hours,
	)

	return domain.NewFinding("grant_user_access", detail.Username, []string{message}).
		WithSeverity(domain.SeverityLow).
		WithAccount(domain.NewAccount(detail.Account, "")).
		WithRegion(event.Region), nil
}
