package alerting

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/analysis"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/events"
)

// AuditStore fetches one audit report named by a trigger record.
type AuditStore interface {
	FetchAudit(ctx context.Context, bucket, key string) (domain.Audit, error)
}

// ConfigStore loads the notification filter and mapping records.
type ConfigStore interface {
	Filters(ctx context.Context) ([]domain.FilterConfig, error)
	Mappings(ctx context.Context) ([]domain.MappingConfig, error)
}

// TriggerRecord identifies one freshly written audit report.
type TriggerRecord struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Orchestrator glues the pipeline together: fetch, analyse, filter,
// map, send. Each invocation is stateless and independent.
type Orchestrator struct {
	audits     AuditStore
	configs    ConfigStore
	dispatcher *analysis.Dispatcher
	registry   *events.Registry
	slack      *SlackNotifier
	pager      *PagerDutyNotifier
}

func NewOrchestrator(
	audits AuditStore,
	configs ConfigStore,
	dispatcher *analysis.Dispatcher,
	registry *events.Registry,
	slack *SlackNotifier,
	pager *PagerDutyNotifier,
) *Orchestrator {
	return &Orchestrator{
		audits:     audits,
		configs:    configs,
		dispatcher: dispatcher,
		registry:   registry,
		slack:      slack,
		pager:      pager,
	}
}

// ProcessAudits runs the analysis pipeline for each triggered report.
// Fetch, dispatch, and config errors abort the run; delivery errors do
// not (they are isolated per notification inside Send).
func (o *Orchestrator) ProcessAudits(ctx context.Context, records []TriggerRecord) error {
	logger := zerolog.Ctx(ctx)

	filters, mappings, err := o.loadConfigs(ctx)
	if err != nil {
		return err
	}

	for _, record := range records {
		audit, err := o.audits.FetchAudit(ctx, record.Bucket, record.Key)
		if err != nil {
			return err
		}

		findings, err := o.dispatcher.Analyse(ctx, audit)
		if err != nil {
			return err
		}
		logger.Info().
			Str("audit_type", audit.Type).
			Int("findings", len(findings)).
			Msg("analysed audit")

		filtered := o.slack.ApplyFilters(findings, filters)
		messages := o.slack.ApplyMappings(ctx, filtered, mappings)
		o.slack.Send(ctx, messages)
	}
	return nil
}

// ProcessEvents runs the operational-event pipeline for one raw
// envelope batch: chat notifications for every reportable finding, and
// pages for the page-worthy subset.
func (o *Orchestrator) ProcessEvents(ctx context.Context, raw []byte) error {
	logger := zerolog.Ctx(ctx)

	findings, alerts, err := o.registry.Process(logger, raw)
	if err != nil {
		return err
	}

	filters, mappings, err := o.loadConfigs(ctx)
	if err != nil {
		return err
	}

	filtered := o.slack.ApplyFilters(findings, filters)
	messages := o.slack.ApplyMappings(ctx, filtered, mappings)
	o.slack.Send(ctx, messages)

	pageworthy := o.pager.ApplyFilters(alerts, filters)
	pages, err := o.pager.ApplyMappings(ctx, pageworthy, mappings)
	if err != nil {
		return err
	}
	o.pager.Send(ctx, pages)
	return nil
}

func (o *Orchestrator) loadConfigs(ctx context.Context) ([]domain.FilterConfig, []domain.MappingConfig, error) {
	filters, err := o.configs.Filters(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load filter configs: %w", err)
	}
	mappings, err := o.configs.Mappings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load mapping configs: %w", err)
	}
	return filters, mappings, nil
}
