package alerting

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/notification"
)

// SlackSender delivers one rendered chat message.
type SlackSender interface {
	Send(ctx context.Context, message api.SlackMessage) error
}

// SlackNotifier runs the chat delivery pipeline: filter findings, map
// them to channel-addressed messages, send each independently.
type SlackNotifier struct {
	mapper *notification.Mapper
	sender SlackSender
}

func NewSlackNotifier(mapper *notification.Mapper, sender SlackSender) *SlackNotifier {
	return &SlackNotifier{mapper: mapper, sender: sender}
}

func (n *SlackNotifier) ApplyFilters(findings []domain.Finding, filters []domain.FilterConfig) []domain.Finding {
	return notification.NewFindingsFilter(filters).Apply(findings)
}

func (n *SlackNotifier) ApplyMappings(
	ctx context.Context,
	findings []domain.Finding,
	mappings []domain.MappingConfig,
) []api.SlackMessage {
	return n.mapper.Map(ctx, findings, mappings)
}

// Send delivers each message in turn. A failed delivery is logged and
// never aborts the remaining messages; a message without destinations
// is skipped silently.
func (n *SlackNotifier) Send(ctx context.Context, messages []api.SlackMessage) {
	logger := zerolog.Ctx(ctx)
	for _, message := range messages {
		if len(message.Channels) == 0 {
			continue
		}
		if err := n.sender.Send(ctx, message); err != nil {
			logger.Error().Err(err).
				Strs("channels", message.Channels).
				Str("title", message.Title).
				Msg("failed to deliver slack notification")
			continue
		}
		logger.Info().
			Strs("channels", message.Channels).
			Str("title", message.Title).
			Msg("delivered slack notification")
	}
}
