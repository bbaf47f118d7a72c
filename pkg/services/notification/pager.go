package notification

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/events"
)

// SecretResolver fetches the routing key for a named PagerDuty service.
type SecretResolver interface {
	PagerDutyRoutingKey(ctx context.Context, service string) (string, error)
}

// PagerMapper turns page alerts into PagerDuty events: one event per
// (alert, matching mapping with a pagerduty_service) pair, so an alert
// matched by several configs legitimately pages several services.
type PagerMapper struct {
	client    string
	clientURL string
	secrets   SecretResolver
}

func NewPagerMapper(client, clientURL string, secrets SecretResolver) *PagerMapper {
	return &PagerMapper{client: client, clientURL: clientURL, secrets: secrets}
}

// Map resolves one routing key per matched service. Secret lookup
// failures abort the run: a page we cannot route is not one we can
// silently drop.
func (p *PagerMapper) Map(
	ctx context.Context,
	alerts []events.PageAlert,
	mappings []domain.MappingConfig,
) ([]api.PagerDutyEvent, error) {
	var pages []api.PagerDutyEvent
	for _, alert := range alerts {
		for _, service := range matchedServices(alert.Finding, mappings) {
			routingKey, err := p.secrets.PagerDutyRoutingKey(ctx, service)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve routing key for service %q: %w", service, err)
			}
			pages = append(pages, api.PagerDutyEvent{
				RoutingKey:  routingKey,
				EventAction: "trigger",
				Client:      p.client,
				ClientURL:   p.clientURL,
				Payload:     alert.Payload,
				Service:     service,
			})
		}
	}

	slices.SortFunc(pages, func(a, b api.PagerDutyEvent) int {
		if c := strings.Compare(a.Payload.Source, b.Payload.Source); c != 0 {
			return c
		}
		if c := strings.Compare(a.Payload.Component, b.Payload.Component); c != 0 {
			return c
		}
		return strings.Compare(a.Service, b.Service)
	})
	return pages, nil
}

func matchedServices(finding domain.Finding, mappings []domain.MappingConfig) []string {
	set := map[string]struct{}{}
	for _, mapping := range mappings {
		if mapping.PagerDutyService != "" && mapping.Matches(finding) {
			set[mapping.PagerDutyService] = struct{}{}
		}
	}
	services := make([]string, 0, len(set))
	for service := range set {
		services = append(services, service)
	}
	slices.Sort(services)
	return services
}
