package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"

	"github.com/xavierca1/ligue-attio-sync/internal/entity"
)

const DefaultNoteTitle = "New record created"

// SyncSubmissionUseCase leva um envio do formulário para o Attio:
// record (assert por email) -> entry na lista de vendas -> nota.
//
// Os três passos são chamadas remotas independentes. Se a lista ou a nota falharem, o record
// já existe no Attio mesmo com success=false; por isso o RecordID sempre volta no resultado
// quando o primeiro passo passou. Nada é repetido aqui.
type SyncSubmissionUseCase struct {
	Records   RecordUpserter
	Lists     ListEntryAsserter
	Notes     NoteCreator
	NoteTitle string
	Logger    glog.Logger
	Now       func() time.Time
}

func NewSyncSubmissionUseCase(
	records RecordUpserter,
	lists ListEntryAsserter,
	notes NoteCreator,
	noteTitle string,
	logger glog.Logger,
) *SyncSubmissionUseCase {
	if strings.TrimSpace(noteTitle) == "" {
		noteTitle = DefaultNoteTitle
	}
	if logger == nil {
		logger = glog.Nop()
	}
	return &SyncSubmissionUseCase{
		Records:   records,
		Lists:     lists,
		Notes:     notes,
		NoteTitle: noteTitle,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Execute nunca devolve erro. Toda falha vira PARTIAL_FAILURE com o estágio marcado.
func (uc *SyncSubmissionUseCase) Execute(ctx context.Context, input SyncSubmissionInput) *SyncSubmissionOutput {
	submission := uc.accept(input)
	logger := uc.Logger.WithContext(ctx)

	out := &SyncSubmissionOutput{
		SubmissionID: submission.ID,
		State:        entity.StatePending,
	}

	pipeline := NewPipeline()

	pipeline.AddStage(entity.StageRecord, func(ctx context.Context) error {
		rec, err := uc.Records.Upsert(ctx, RecordInput{
			Name:  submission.Name,
			Email: submission.Email,
			Phone: submission.Phone,
		})
		if err != nil {
			return err
		}
		out.RecordID = rec.RecordID
		return nil
	})

	pipeline.AddStage(entity.StageList, func(ctx context.Context) error {
		entry, err := uc.Lists.Assert(ctx, ListEntryInput{RecordID: out.RecordID})
		if err != nil {
			return err
		}
		out.ListEntryID = entry.EntryID
		return nil
	})

	pipeline.AddStage(entity.StageNote, func(ctx context.Context) error {
		note, err := uc.Notes.Create(ctx, NoteInput{
			RecordID:  out.RecordID,
			Title:     uc.NoteTitle,
			Content:   noteContent(submission.Message),
			CreatedAt: submission.Timestamp(uc.Now()).UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
		out.NoteID = note.NoteID
		return nil
	})

	failedStage, err := pipeline.Execute(ctx)
	out.State = pipeline.State()

	if err == nil {
		out.Success = true
		logger.Info("✅ Formulário sincronizado com o Attio",
			"submission_id", submission.ID,
			"record_id", out.RecordID,
			"entry_id", out.ListEntryID,
			"note_id", out.NoteID,
		)
		return out
	}

	opByStage := map[entity.Stage]string{
		entity.StageRecord: OpUpsertRecord,
		entity.StageList:   OpAssertListEntry,
		entity.StageNote:   OpCreateNote,
	}
	we := classify(opByStage[failedStage], err)

	out.FailedStage = failedStage
	out.ErrorCode = we.Kind
	out.Retryable = isRetryable(failedStage, we.Kind)
	out.Message = failureMessage(failedStage, we)
	out.Cause = err

	logger.Error("❌ Falha ao sincronizar formulário",
		"submission_id", submission.ID,
		"stage", string(failedStage),
		"kind", string(we.Kind),
		"record_id", out.RecordID,
		"error", err,
	)
	return out
}

func (uc *SyncSubmissionUseCase) accept(input SyncSubmissionInput) entity.Submission {
	s := entity.Submission{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Message: input.Message,
	}
	if input.SubmittedAt != nil {
		s.SubmittedAt = *input.SubmittedAt
	}
	return s
}

func noteContent(message string) string {
	return fmt.Sprintf("Message: %s", message)
}

// Repetir o formulário inteiro só é seguro se a nota ainda não foi tentada.
func isRetryable(stage entity.Stage, kind ErrorKind) bool {
	if kind != KindTransport {
		return false
	}
	return stage == entity.StageRecord || stage == entity.StageList
}

func failureMessage(stage entity.Stage, we *WriteError) string {
	var prefix string
	switch stage {
	case entity.StageRecord:
		prefix = "Error updating records"
	case entity.StageList:
		prefix = "Record saved, but it could not be added to the sales list"
	case entity.StageNote:
		prefix = "Record saved and listed, but the note could not be created"
	default:
		prefix = "Error syncing submission"
	}
	if we == nil || we.Message == "" {
		return prefix
	}
	// Erro de transporte pode carregar URL e detalhes de rede; não sai na resposta.
	if we.Kind == KindTransport {
		return prefix + ": the CRM could not be reached"
	}
	return prefix + ": " + we.Message
}
