package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const DetailTypeHealth = "AWS Health Event"

type healthDetail struct {
	Service           string `json:"service"`
	EventTypeCode     string `json:"eventTypeCode"`
	EventTypeCategory string `json:"eventTypeCategory"`
	StatusCode        string `json:"statusCode"`
	EventDescription  []struct {
		Language          string `json:"language"`
		LatestDescription string `json:"latestDescription"`
	} `json:"eventDescription"`
	AffectedEntities []struct {
		EntityValue string `json:"entityValue"`
	} `json:"affectedEntities"`
}

// HealthAdapter reports AWS Health events and, for open issues, raises a
// page. Chat-worthiness and page-worthiness are decided independently.
type HealthAdapter struct{}

func NewHealthAdapter() *HealthAdapter {
	return &HealthAdapter{}
}

func (a *HealthAdapter) Finding(event Event) (domain.Finding, error) {
	detail, err := a.decode(event)
	if err != nil {
		return domain.Finding{}, err
	}

	message := fmt.Sprintf("%s %s is %s", detail.Service, detail.EventTypeCode, detail.StatusCode)
	if description := detail.latestDescription(); description != "" {
		message += "\n" + description
	}

	return domain.NewFinding("aws_health", detail.EventTypeCode, []string{message}).
		WithAccount(domain.NewAccount(event.Account, "")).
		WithRegion(event.Region), nil
}

// PageWorthy pages for open service issues only; scheduled changes and
// account notifications stay chat-only.
func (a *HealthAdapter) PageWorthy(event Event) bool {
	detail, err := a.decode(event)
	if err != nil {
		return false
	}
	return detail.EventTypeCategory == "issue" && detail.StatusCode == "open"
}

func (a *HealthAdapter) Payload(event Event) (api.PagerDutyPayload, error) {
	detail, err := a.decode(event)
	if err != nil {
		return api.PagerDutyPayload{}, err
	}

	affected := make([]string, 0, len(detail.AffectedEntities))
	for _, entity := range detail.AffectedEntities {
		affected = append(affected, entity.EntityValue)
	}

	return api.PagerDutyPayload{
		Summary:   detail.EventTypeCode,
		Source:    detail.Service,
		Component: detail.Service,
		Class:     detail.EventTypeCategory,
		Group:     event.Region,
		Severity:  "critical",
		CustomDetails: map[string]any{
			"account":           event.Account,
			"description":       detail.latestDescription(),
			"affected_entities": strings.Join(affected, ", "),
		},
	}, nil
}

func (a *HealthAdapter) decode(event Event) (healthDetail, error) {
	var detail healthDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return healthDetail{}, fmt.Errorf("failed to decode health event: %w", err)
	}
	return detail, nil
}

func (d healthDetail) latestDescription() string {
	for _, description := range d.EventDescription {
		if description.Language == "en_US" {
			return description.LatestDescription
		}
	}
	if len(d.EventDescription) > 0 {
		return d.EventDescription[0].LatestDescription
	}
	return ""
}
