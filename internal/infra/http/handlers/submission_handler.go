package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/goliatone/go-logger/glog"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-attio-sync/internal/usecase"
)

type SyncSubmissionExecutor interface {
	Execute(ctx context.Context, input usecase.SyncSubmissionInput) *usecase.SyncSubmissionOutput
}

type PartialFailureNotifier interface {
	NotifyPartialFailure(ctx context.Context, input usecase.SyncSubmissionInput, out *usecase.SyncSubmissionOutput) error
}

const notifyTimeout = 30 * time.Second

type SubmissionHandler struct {
	UseCase  SyncSubmissionExecutor
	Notifier PartialFailureNotifier
	Logger   glog.Logger

	// só para testes: espera o aviso ao owner terminar
	notified chan struct{}
}

func NewSubmissionHandler(uc SyncSubmissionExecutor, notifier PartialFailureNotifier, logger glog.Logger) *SubmissionHandler {
	if logger == nil {
		logger = glog.Nop()
	}
	return &SubmissionHandler{
		UseCase:  uc,
		Notifier: notifier,
		Logger:   logger,
	}
}

// Handle recebe o formulário de contato. A resposta é sempre o resultado da sincronização,
// com status 200 mesmo quando success=false. Só JSON inválido vira 400.
func (h *SubmissionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.SyncSubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	out := h.UseCase.Execute(r.Context(), input)
	middleware.RecordSubmission(string(out.State), string(out.FailedStage))

	if !out.Success {
		if out.ErrorCode != usecase.KindValidation {
			middleware.RecordIntegrationError("attio_" + string(out.FailedStage))
		}
		h.Logger.Error("❌ Formulário não sincronizado",
			"submission_id", out.SubmissionID,
			"stage", string(out.FailedStage),
			"kind", string(out.ErrorCode),
			"record_id", out.RecordID,
			"cause", out.Cause,
		)
		h.notify(input, out)
	}

	writeJSON(w, http.StatusOK, out)
}

// notify só avisa quando algo já foi gravado no Attio. Falha no record não deixou nada para ajustar.
func (h *SubmissionHandler) notify(input usecase.SyncSubmissionInput, out *usecase.SyncSubmissionOutput) {
	if h.Notifier == nil || !needsOwnerAttention(out) {
		return
	}

	go func() {
		if h.notified != nil {
			defer close(h.notified)
		}
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := h.Notifier.NotifyPartialFailure(ctx, input, out); err != nil {
			h.Logger.Warn("⚠️ Falha ao avisar o owner por email",
				"submission_id", out.SubmissionID,
				"error", err,
			)
		}
	}()
}

func needsOwnerAttention(out *usecase.SyncSubmissionOutput) bool {
	return out != nil && !out.Success && out.RecordID != ""
}
