package usecase

import (
	"context"

	"github.com/goliatone/go-logger/glog"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
)

// NoteWriter cria uma nota plaintext em um record de "people".
//
// Não é idempotente: cada chamada cria uma nota nova. Se a chamada der timeout depois
// que a escrita já aconteceu no Attio, repetir gera nota duplicada. Quem chama não deve
// repetir às cegas.
type NoteWriter struct {
	Gateway CRMGateway
	Logger  glog.Logger
}

func NewNoteWriter(gateway CRMGateway, logger glog.Logger) *NoteWriter {
	if logger == nil {
		logger = glog.Nop()
	}
	return &NoteWriter{Gateway: gateway, Logger: logger}
}

func (w *NoteWriter) Create(ctx context.Context, input NoteInput) (*NoteOutput, error) {
	if errs := ValidateNoteInput(input); len(errs) > 0 {
		return nil, validationFailure(OpCreateNote, errs)
	}

	body := attio.CreateNoteRequest{
		Data: attio.NoteData{
			ParentObject:   attio.ObjectPeople,
			ParentRecordID: input.RecordID,
			Title:          input.Title,
			Format:         attio.NoteFormatPlaintext,
			Content:        input.Content,
			CreatedAt:      input.CreatedAt,
		},
	}

	resp, err := w.Gateway.CreateNote(ctx, body)
	if err != nil {
		return nil, classify(OpCreateNote, err)
	}

	if resp == nil || resp.Data.ID.NoteID == "" {
		return nil, &WriteError{
			Kind:    KindTransport,
			Op:      OpCreateNote,
			Message: "Failed to retrieve note ID",
		}
	}

	content := resp.Data.ContentPlaintext
	if content == "" {
		content = input.Content
	}

	w.Logger.Info("📝 Attio: nota criada", "record_id", input.RecordID, "note_id", resp.Data.ID.NoteID)
	return &NoteOutput{NoteID: resp.Data.ID.NoteID, Content: content}, nil
}
