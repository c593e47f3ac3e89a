package entity

import "time"

// Submission é um envio do formulário de contato. Vive só durante uma sincronização.
type Submission struct {
	ID          string
	Name        string
	Email       string // chave de matching no Attio
	Phone       string
	Message     string
	SubmittedAt time.Time
}

// Timestamp devolve SubmittedAt ou, se vazio, o instante da orquestração.
func (s Submission) Timestamp(now time.Time) time.Time {
	if s.SubmittedAt.IsZero() {
		return now
	}
	return s.SubmittedAt
}

type Stage string

const (
	StageRecord Stage = "record"
	StageList   Stage = "list"
	StageNote   Stage = "note"
)

type SyncState string

const (
	StatePending        SyncState = "PENDING"
	StateRecordResolved SyncState = "RECORD_RESOLVED"
	StateListLinked     SyncState = "LIST_LINKED"
	StateNoted          SyncState = "NOTED"
	StatePartialFailure SyncState = "PARTIAL_FAILURE"
)

// Next devolve o estado alcançado quando o estágio termina com sucesso.
func (s Stage) Next() SyncState {
	switch s {
	case StageRecord:
		return StateRecordResolved
	case StageList:
		return StateListLinked
	case StageNote:
		return StateNoted
	}
	return StatePartialFailure
}
