package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

// Analyser turns one audit report into the findings it implies. One
// implementation exists per configured report type.
type Analyser interface {
	Analyse(ctx context.Context, audit domain.Audit) ([]domain.Finding, error)
}

// UnsupportedAuditError is returned when no analyser is registered for
// an audit's type tag.
type UnsupportedAuditError struct {
	Type string
}

func (e *UnsupportedAuditError) Error() string {
	return fmt.Sprintf("unsupported audit type %q", e.Type)
}

// Dispatcher selects an analyser by audit type. The mapping is closed at
// construction time; unknown types are rejected explicitly.
type Dispatcher struct {
	analysers map[string]Analyser
}

func NewDispatcher(analysers map[string]Analyser) *Dispatcher {
	return &Dispatcher{analysers: analysers}
}

// Analyse invokes the analyser registered for audit.Type. Analyser
// errors propagate unwrapped.
func (d *Dispatcher) Analyse(ctx context.Context, audit domain.Audit) ([]domain.Finding, error) {
	analyser, ok := d.analysers[audit.Type]
	if !ok {
		return nil, &UnsupportedAuditError{Type: audit.Type}
	}
	return analyser.Analyse(ctx, audit)
}

// SupportedTypes lists the registered report types.
func (d *Dispatcher) SupportedTypes() []string {
	types := make([]string, 0, len(d.analysers))
	for t := range d.analysers {
		types = append(types, t)
	}
	return types
}

// reportAccount is the account block embedded in every per-subject
// report record.
type reportAccount struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

func (a reportAccount) toDomain() domain.Account {
	return domain.NewAccount(a.Identifier, a.Name)
}

// subjectBlock is the envelope shared by per-account report records: who
// was audited, where, and the domain-specific results payload.
type subjectBlock struct {
	Account reportAccount   `json:"account"`
	Region  string          `json:"region"`
	Results json.RawMessage `json:"results"`
}

func decodeBlock(raw json.RawMessage, auditType string) (subjectBlock, error) {
	var block subjectBlock
	if err := json.Unmarshal(raw, &block); err != nil {
		return subjectBlock{}, fmt.Errorf("failed to decode %s report block: %w", auditType, err)
	}
	return block, nil
}
