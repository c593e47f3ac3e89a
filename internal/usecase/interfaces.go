package usecase

import (
	"context"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
)

type CRMGateway interface {
	AssertRecord(ctx context.Context, object, matchingAttribute string, body attio.AssertRecordRequest) (*attio.RecordResponse, error)
	AssertListEntry(ctx context.Context, list string, body attio.AssertListEntryRequest) (*attio.ListEntryResponse, error)
	CreateNote(ctx context.Context, body attio.CreateNoteRequest) (*attio.NoteResponse, error)
}

type RecordUpserter interface {
	Upsert(ctx context.Context, input RecordInput) (*RecordOutput, error)
}

type ListEntryAsserter interface {
	Assert(ctx context.Context, input ListEntryInput) (*ListEntryOutput, error)
}

type NoteCreator interface {
	Create(ctx context.Context, input NoteInput) (*NoteOutput, error)
}
