package alerting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/events"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/notification"
)

func pageAlerts(findings ...domain.Finding) []events.PageAlert {
	alerts := make([]events.PageAlert, 0, len(findings))
	for _, finding := range findings {
		alerts = append(alerts, events.PageAlert{
			Finding: finding,
			Payload: api.PagerDutyPayload{Summary: finding.Item, Severity: "critical"},
		})
	}
	return alerts
}

func TestSlackNotifier_FailedDeliveryDoesNotStopTheRest(t *testing.T) {
	sender := &fakeSlackSender{
		failOn: func(message api.SlackMessage) error {
			if message.Title == "second" {
				return assert.AnError
			}
			return nil
		},
	}
	notifier := NewSlackNotifier(notification.NewMapper("central", &staticResolver{}), sender)

	messages := []api.SlackMessage{
		{Channels: []string{"central"}, Title: "first"},
		{Channels: []string{"central"}, Title: "second"},
		{Channels: []string{"central"}, Title: "third"},
	}

	notifier.Send(context.Background(), messages)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "first", sender.sent[0].Title)
	assert.Equal(t, "third", sender.sent[1].Title)
}

func TestSlackNotifier_SkipsMessagesWithoutDestinations(t *testing.T) {
	sender := &fakeSlackSender{}
	notifier := NewSlackNotifier(notification.NewMapper("central", &staticResolver{}), sender)

	notifier.Send(context.Background(), []api.SlackMessage{
		{Title: "nowhere to go"},
		{Channels: []string{"central"}, Title: "deliverable"},
	})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "deliverable", sender.sent[0].Title)
}

func TestPagerDutyNotifier_FiltersSuppressedAlerts(t *testing.T) {
	notifier := NewPagerDutyNotifier(
		notification.NewPagerMapper("compliance-alerting", "https://alerting.example.org", staticSecrets{}),
		&fakePagerDutySender{},
	)

	alerts := pageAlerts(
		domain.NewFinding("aws_health", "AWS_EC2_OPERATIONAL_ISSUE", []string{"ec2 is degraded"}),
		domain.NewFinding("aws_health", "AWS_RDS_OPERATIONAL_ISSUE", []string{"rds is degraded"}),
	)
	filters := []domain.FilterConfig{{Item: "AWS_RDS_OPERATIONAL_ISSUE", Reason: "handled elsewhere"}}

	kept := notifier.ApplyFilters(alerts, filters)

	require.Len(t, kept, 1)
	assert.Equal(t, "AWS_EC2_OPERATIONAL_ISSUE", kept[0].Finding.Item)
}

func TestPagerDutyNotifier_SkipsPagesWithoutRoutingKey(t *testing.T) {
	sender := &fakePagerDutySender{}
	notifier := NewPagerDutyNotifier(
		notification.NewPagerMapper("compliance-alerting", "https://alerting.example.org", staticSecrets{}),
		sender,
	)

	notifier.Send(context.Background(), []api.PagerDutyEvent{
		{EventAction: "trigger"},
		{RoutingKey: "key-infra", EventAction: "trigger", Service: "infra"},
	})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "infra", sender.sent[0].Service)
}
