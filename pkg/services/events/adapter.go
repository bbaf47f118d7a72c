package events

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

// Event is one operational event unwrapped from its envelope.
type Event struct {
	DetailType string          `json:"detail-type"`
	Account    string          `json:"account"`
	Region     string          `json:"region"`
	Detail     json.RawMessage `json:"detail"`
}

// Adapter converts one event into a finding. Implementations are keyed
// by the event's detail-type tag.
type Adapter interface {
	Finding(event Event) (domain.Finding, error)
}

// PagingAdapter is implemented by adapters whose events can also page.
// PageWorthy is independent of whether the event produced a reportable
// finding.
type PagingAdapter interface {
	Adapter
	PageWorthy(event Event) bool
	Payload(event Event) (api.PagerDutyPayload, error)
}

// PageAlert couples a page payload with the finding it derives from, so
// the paging mapper can apply the same mapping criteria as chat.
type PageAlert struct {
	Finding domain.Finding
	Payload api.PagerDutyPayload
}

type batch struct {
	Records []struct {
		Body string `json:"body"`
	} `json:"Records"`
}

// Registry dispatches envelope records to adapters by detail-type.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters map[string]Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// NewDefaultRegistry wires every supported detail-type to its adapter.
func NewDefaultRegistry() *Registry {
	return NewRegistry(map[string]Adapter{
		DetailTypeCodeBuild:       NewCodeBuildAdapter(),
		DetailTypeCodePipeline:    NewCodePipelineAdapter(),
		DetailTypeHealth:          NewHealthAdapter(),
		DetailTypeGrantUserAccess: NewGrantUserAccessAdapter(),
	})
}

// Process decodes a raw envelope batch and converts each record. A
// record with an unrecognised detail-type is logged and skipped; a
// malformed batch is an error.
func (r *Registry) Process(logger *zerolog.Logger, raw []byte) ([]domain.Finding, []PageAlert, error) {
	var b batch
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, nil, fmt.Errorf("failed to decode event batch: %w", err)
	}

	var findings []domain.Finding
	var alerts []PageAlert
	for _, record := range b.Records {
		var event Event
		if err := json.Unmarshal([]byte(record.Body), &event); err != nil {
			return nil, nil, fmt.Errorf("failed to decode event record: %w", err)
		}

		adapter, ok := r.adapters[event.DetailType]
		if !ok {
			logger.Debug().Str("detail_type", event.DetailType).Msg("skipping unrecognised event type")
			continue
		}

		finding, err := adapter.Finding(event)
		if err != nil {
			return nil, nil, err
		}
		findings = append(findings, finding)

		pager, ok := adapter.(PagingAdapter)
		if !ok || !pager.PageWorthy(event) {
			continue
		}
		payload, err := pager.Payload(event)
		if err != nil {
			return nil, nil, err
		}
		alerts = append(alerts, PageAlert{Finding: finding, Payload: payload})
	}
	return findings, alerts, nil
}
