package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
	"github.com/xavierca1/ligue-attio-sync/internal/usecase"
)

// MockCRMGateway
type MockCRMGateway struct {
	mock.Mock
}

func (m *MockCRMGateway) AssertRecord(ctx context.Context, object, matchingAttribute string, body attio.AssertRecordRequest) (*attio.RecordResponse, error) {
	args := m.Called(ctx, object, matchingAttribute, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attio.RecordResponse), args.Error(1)
}

func (m *MockCRMGateway) AssertListEntry(ctx context.Context, list string, body attio.AssertListEntryRequest) (*attio.ListEntryResponse, error) {
	args := m.Called(ctx, list, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attio.ListEntryResponse), args.Error(1)
}

func (m *MockCRMGateway) CreateNote(ctx context.Context, body attio.CreateNoteRequest) (*attio.NoteResponse, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attio.NoteResponse), args.Error(1)
}

func recordResponse(id string) *attio.RecordResponse {
	resp := &attio.RecordResponse{}
	resp.Data.ID.RecordID = id
	return resp
}

func entryResponse(id string) *attio.ListEntryResponse {
	resp := &attio.ListEntryResponse{}
	resp.Data.ID.EntryID = id
	return resp
}

func noteResponse(id, content string) *attio.NoteResponse {
	resp := &attio.NoteResponse{}
	resp.Data.ID.NoteID = id
	resp.Data.ContentPlaintext = content
	return resp
}

func apiErr(status int, category goerrors.Category, code string) error {
	return goerrors.New("attio said no", category).WithCode(status).WithTextCode(code)
}

// ============ RECORD WRITER ============

func TestRecordWriterBuildsAssertPayload(t *testing.T) {
	gw := new(MockCRMGateway)
	expected := attio.AssertRecordRequest{Data: attio.RecordData{Values: attio.RecordValues{
		Name:           []string{"Ada"},
		EmailAddresses: []string{"ada@example.com"},
		PhoneNumbers:   []string{"555-0100"},
	}}}
	gw.On("AssertRecord", mock.Anything, "people", "email_addresses", expected).Return(recordResponse("rec-1"), nil)

	out, err := usecase.NewRecordWriter(gw, nil).Upsert(context.Background(), usecase.RecordInput{
		Name:  "Ada",
		Email: "ada@example.com",
		Phone: "555-0100",
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", out.RecordID)
	gw.AssertExpectations(t)
}

func TestRecordWriterSendsEmptyArraysForMissingOptionals(t *testing.T) {
	gw := new(MockCRMGateway)
	gw.On("AssertRecord", mock.Anything, "people", "email_addresses", mock.MatchedBy(func(body attio.AssertRecordRequest) bool {
		v := body.Data.Values
		return v.Name != nil && len(v.Name) == 0 && v.PhoneNumbers != nil && len(v.PhoneNumbers) == 0
	})).Return(recordResponse("rec-1"), nil)

	_, err := usecase.NewRecordWriter(gw, nil).Upsert(context.Background(), usecase.RecordInput{Email: "ada@example.com"})

	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestRecordWriterRejectsEmptyEmailWithoutCallingGateway(t *testing.T) {
	gw := new(MockCRMGateway)

	_, err := usecase.NewRecordWriter(gw, nil).Upsert(context.Background(), usecase.RecordInput{Name: "Ada", Email: "  "})

	assert.True(t, usecase.IsValidationError(err))
	gw.AssertNotCalled(t, "AssertRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordWriterCountsNameLengthInCharacters(t *testing.T) {
	gw := new(MockCRMGateway)
	gw.On("AssertRecord", mock.Anything, "people", "email_addresses", mock.Anything).Return(recordResponse("rec-1"), nil)
	writer := usecase.NewRecordWriter(gw, nil)

	// 200 caracteres, 400 bytes
	_, err := writer.Upsert(context.Background(), usecase.RecordInput{Name: strings.Repeat("ã", 200), Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = writer.Upsert(context.Background(), usecase.RecordInput{Name: strings.Repeat("ã", 201), Email: "ada@example.com"})
	assert.True(t, usecase.IsValidationError(err))
	gw.AssertNumberOfCalls(t, "AssertRecord", 1)
}

func TestRecordWriterMapsGatewayErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind usecase.ErrorKind
	}{
		{"400", apiErr(http.StatusBadRequest, goerrors.CategoryValidation, "VALIDATION_TYPE"), usecase.KindValidation},
		{"404", apiErr(http.StatusNotFound, goerrors.CategoryNotFound, "NOT_FOUND"), usecase.KindNotFound},
		{"409", apiErr(http.StatusConflict, goerrors.CategoryConflict, "UNIQUENESS_CONFLICT"), usecase.KindConflict},
		{"403", apiErr(http.StatusForbidden, goerrors.CategoryAuthz, "BILLING_ERROR"), usecase.KindForbidden},
		{"network", apiErr(http.StatusBadGateway, goerrors.CategoryExternal, attio.TextCodeTransport), usecase.KindTransport},
		{"plain error", errors.New("connection reset"), usecase.KindTransport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := new(MockCRMGateway)
			gw.On("AssertRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			_, err := usecase.NewRecordWriter(gw, nil).Upsert(context.Background(), usecase.RecordInput{Email: "ada@example.com"})

			var we *usecase.WriteError
			require.True(t, errors.As(err, &we))
			assert.Equal(t, tc.kind, we.Kind)
			assert.Equal(t, usecase.OpUpsertRecord, we.Op)
		})
	}
}

func TestRecordWriterMissingRecordID(t *testing.T) {
	gw := new(MockCRMGateway)
	gw.On("AssertRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(recordResponse(""), nil)

	_, err := usecase.NewRecordWriter(gw, nil).Upsert(context.Background(), usecase.RecordInput{Email: "ada@example.com"})

	assert.True(t, usecase.IsTransportError(err))
}

// ============ LIST ENTRY WRITER ============

func TestListEntryWriterAssertsOwnerOnSalesList(t *testing.T) {
	gw := new(MockCRMGateway)
	expected := attio.AssertListEntryRequest{Data: attio.ListEntryData{
		ParentRecordID: "rec-1",
		ParentObject:   "people",
		EntryValues:    attio.EntryValues{Owner: []string{"owner@example.com"}},
	}}
	gw.On("AssertListEntry", mock.Anything, "sales_3", expected).Return(entryResponse("entry-1"), nil)

	out, err := usecase.NewListEntryWriter(gw, "", "owner@example.com", nil).Assert(context.Background(), usecase.ListEntryInput{RecordID: "rec-1"})

	require.NoError(t, err)
	assert.Equal(t, "entry-1", out.EntryID)
	gw.AssertExpectations(t)
}

func TestListEntryWriterMultipleMatchIsConflict(t *testing.T) {
	gw := new(MockCRMGateway)
	multiple := apiErr(http.StatusBadRequest, goerrors.CategoryValidation, "MULTIPLE_MATCH_RESULTS")
	gw.On("AssertListEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil, multiple)

	out, err := usecase.NewListEntryWriter(gw, "sales_3", "owner@example.com", nil).Assert(context.Background(), usecase.ListEntryInput{RecordID: "rec-1"})

	assert.Nil(t, out)
	assert.True(t, usecase.IsConflictError(err))
}

func TestListEntryWriterNotFound(t *testing.T) {
	gw := new(MockCRMGateway)
	gw.On("AssertListEntry", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apiErr(http.StatusNotFound, goerrors.CategoryNotFound, "NOT_FOUND"))

	_, err := usecase.NewListEntryWriter(gw, "sales_3", "owner@example.com", nil).Assert(context.Background(), usecase.ListEntryInput{RecordID: "rec-1"})

	assert.True(t, usecase.IsNotFoundError(err))
}

func TestListEntryWriterRequiresRecordID(t *testing.T) {
	gw := new(MockCRMGateway)

	_, err := usecase.NewListEntryWriter(gw, "sales_3", "owner@example.com", nil).Assert(context.Background(), usecase.ListEntryInput{})

	assert.True(t, usecase.IsValidationError(err))
	gw.AssertNotCalled(t, "AssertListEntry", mock.Anything, mock.Anything, mock.Anything)
}

// ============ NOTE WRITER ============

func TestNoteWriterCreatesPlaintextNote(t *testing.T) {
	gw := new(MockCRMGateway)
	expected := attio.CreateNoteRequest{Data: attio.NoteData{
		ParentObject:   "people",
		ParentRecordID: "rec-1",
		Title:          "New record created",
		Format:         "plaintext",
		Content:        "Message: Interested in a demo",
		CreatedAt:      "2026-10-19T10:00:00Z",
	}}
	gw.On("CreateNote", mock.Anything, expected).Return(noteResponse("note-1", "Message: Interested in a demo"), nil)

	out, err := usecase.NewNoteWriter(gw, nil).Create(context.Background(), usecase.NoteInput{
		RecordID:  "rec-1",
		Title:     "New record created",
		Content:   "Message: Interested in a demo",
		CreatedAt: "2026-10-19T10:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "note-1", out.NoteID)
	assert.Equal(t, "Message: Interested in a demo", out.Content)
	gw.AssertExpectations(t)
}

func TestNoteWriterValidation(t *testing.T) {
	cases := map[string]usecase.NoteInput{
		"empty content":     {RecordID: "rec-1", Title: "t", Content: " ", CreatedAt: "2026-10-19T10:00:00Z"},
		"invalid timestamp": {RecordID: "rec-1", Title: "t", Content: "c", CreatedAt: "yesterday"},
		"missing record":    {Title: "t", Content: "c", CreatedAt: "2026-10-19T10:00:00Z"},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			gw := new(MockCRMGateway)

			_, err := usecase.NewNoteWriter(gw, nil).Create(context.Background(), input)

			assert.True(t, usecase.IsValidationError(err))
			gw.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything)
		})
	}
}

func TestNoteWriterRecordNotFound(t *testing.T) {
	gw := new(MockCRMGateway)
	gw.On("CreateNote", mock.Anything, mock.Anything).
		Return(nil, apiErr(http.StatusNotFound, goerrors.CategoryNotFound, "NOT_FOUND"))

	_, err := usecase.NewNoteWriter(gw, nil).Create(context.Background(), usecase.NoteInput{
		RecordID:  "missing",
		Title:     "t",
		Content:   "c",
		CreatedAt: "2026-10-19T10:00:00Z",
	})

	assert.True(t, usecase.IsNotFoundError(err))
}
