package usecase

import (
	"time"

	"github.com/xavierca1/ligue-attio-sync/internal/entity"
)

type RecordInput struct {
	Name  string
	Email string
	Phone string
}

type RecordOutput struct {
	RecordID string
}

type ListEntryInput struct {
	RecordID string
}

type ListEntryOutput struct {
	EntryID string
}

type NoteInput struct {
	RecordID  string `json:"recordId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type NoteOutput struct {
	NoteID  string `json:"noteId"`
	Content string `json:"content"`
}

// SyncSubmissionInput é o corpo do formulário de contato.
type SyncSubmissionInput struct {
	Name        string     `json:"name,omitempty"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Message     string     `json:"message,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// SyncSubmissionOutput é devolvido como está no corpo da resposta HTTP.
// Cause fica fora do JSON: só quem chamou loga o erro bruto.
type SyncSubmissionOutput struct {
	Success      bool             `json:"success"`
	SubmissionID string           `json:"submissionId,omitempty"`
	State        entity.SyncState `json:"state"`
	RecordID     string           `json:"recordId,omitempty"`
	ListEntryID  string           `json:"listEntryId,omitempty"`
	NoteID       string           `json:"noteId,omitempty"`
	FailedStage  entity.Stage     `json:"failedStage,omitempty"`
	ErrorCode    ErrorKind        `json:"errorCode,omitempty"`
	Retryable    bool             `json:"retryable,omitempty"`
	Message      string           `json:"message,omitempty"`

	Cause error `json:"-"`
}
