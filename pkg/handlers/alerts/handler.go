package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/alerting"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/analysis"
)

// Processor runs one alerting pipeline invocation.
type Processor interface {
	ProcessAudits(ctx context.Context, records []alerting.TriggerRecord) error
	ProcessEvents(ctx context.Context, raw []byte) error
}

type Handler struct {
	processor Processor
}

func NewHandler(processor Processor) *Handler {
	return &Handler{processor: processor}
}

type auditTrigger struct {
	Records []alerting.TriggerRecord `json:"records"`
}

// PostAudits accepts a batch of trigger records naming freshly written
// audit reports and processes each to completion.
func (h *Handler) PostAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var trigger auditTrigger
	if err := json.NewDecoder(r.Body).Decode(&trigger); err != nil {
		logger.Error().Err(err).Msg("malformed audit trigger")
		http.Error(w, "malformed audit trigger", http.StatusBadRequest)
		return
	}

	if err := h.processor.ProcessAudits(ctx, trigger.Records); err != nil {
		logger.Error().Err(err).Msg("failed to process audit trigger")

		var unsupported *analysis.UnsupportedAuditError
		if errors.As(err, &unsupported) {
			http.Error(w, unsupported.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to process audit trigger", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PostEvents accepts a raw operational-event envelope batch.
func (h *Handler) PostEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	if err := h.processor.ProcessEvents(ctx, raw); err != nil {
		logger.Error().Err(err).Msg("failed to process event batch")
		http.Error(w, "failed to process event batch", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
