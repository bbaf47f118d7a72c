package alerting

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/events"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/notification"
)

// PagerDutySender delivers one page event.
type PagerDutySender interface {
	Send(ctx context.Context, event api.PagerDutyEvent) error
}

// PagerDutyNotifier runs the paging pipeline. It is configured
// independently of chat: it reads the same config namespaces but applies
// its own copy of the filters and mappings.
type PagerDutyNotifier struct {
	mapper *notification.PagerMapper
	sender PagerDutySender
}

func NewPagerDutyNotifier(mapper *notification.PagerMapper, sender PagerDutySender) *PagerDutyNotifier {
	return &PagerDutyNotifier{mapper: mapper, sender: sender}
}

func (n *PagerDutyNotifier) ApplyFilters(alerts []events.PageAlert, filters []domain.FilterConfig) []events.PageAlert {
	filter := notification.NewFindingsFilter(filters)
	kept := make([]events.PageAlert, 0, len(alerts))
	for _, alert := range alerts {
		if len(filter.Apply([]domain.Finding{alert.Finding})) > 0 {
			kept = append(kept, alert)
		}
	}
	return kept
}

func (n *PagerDutyNotifier) ApplyMappings(
	ctx context.Context,
	alerts []events.PageAlert,
	mappings []domain.MappingConfig,
) ([]api.PagerDutyEvent, error) {
	return n.mapper.Map(ctx, alerts, mappings)
}

// Send delivers each page event in turn, isolating failures per event.
// An alert that matched no paging service never reaches this point.
func (n *PagerDutyNotifier) Send(ctx context.Context, pages []api.PagerDutyEvent) {
	logger := zerolog.Ctx(ctx)
	for _, page := range pages {
		if page.RoutingKey == "" {
			continue
		}
		if err := n.sender.Send(ctx, page); err != nil {
			logger.Error().Err(err).
				Str("service", page.Service).
				Str("summary", page.Payload.Summary).
				Msg("failed to deliver page")
			continue
		}
		logger.Info().
			Str("service", page.Service).
			Str("summary", page.Payload.Summary).
			Msg("delivered page")
	}
}
