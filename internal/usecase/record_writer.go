package usecase

import (
	"context"
	"strings"

	"github.com/goliatone/go-logger/glog"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
)

// RecordWriter faz o assert do contato em "people", casando por email.
// Idempotente: o mesmo email resolve sempre para o mesmo record.
type RecordWriter struct {
	Gateway CRMGateway
	Logger  glog.Logger
}

func NewRecordWriter(gateway CRMGateway, logger glog.Logger) *RecordWriter {
	if logger == nil {
		logger = glog.Nop()
	}
	return &RecordWriter{Gateway: gateway, Logger: logger}
}

func (w *RecordWriter) Upsert(ctx context.Context, input RecordInput) (*RecordOutput, error) {
	if errs := ValidateRecordInput(input); len(errs) > 0 {
		return nil, validationFailure(OpUpsertRecord, errs)
	}

	body := attio.AssertRecordRequest{
		Data: attio.RecordData{
			Values: attio.RecordValues{
				Name:           optional(input.Name),
				EmailAddresses: []string{strings.TrimSpace(input.Email)},
				PhoneNumbers:   optional(input.Phone),
			},
		},
	}

	resp, err := w.Gateway.AssertRecord(ctx, attio.ObjectPeople, attio.MatchingAttributeEmail, body)
	if err != nil {
		return nil, classify(OpUpsertRecord, err)
	}

	if resp == nil || resp.Data.ID.RecordID == "" {
		return nil, &WriteError{
			Kind:    KindTransport,
			Op:      OpUpsertRecord,
			Message: "Failed to retrieve record ID",
		}
	}

	w.Logger.Info("✅ Attio: record resolvido", "record_id", resp.Data.ID.RecordID)
	return &RecordOutput{RecordID: resp.Data.ID.RecordID}, nil
}
