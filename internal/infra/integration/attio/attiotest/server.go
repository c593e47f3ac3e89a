// Package attiotest sobe um Attio falso em memória para testes.
// Reproduz o matching dos asserts: record por email, list entry por parent.
package attiotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
)

const (
	OpAssertRecord    = "assert_record"
	OpAssertListEntry = "assert_list_entry"
	OpCreateNote      = "create_note"

	WorkspaceID = "ws-test"
)

// Failure força uma resposta de erro para uma operação.
type Failure struct {
	Status  int
	Code    string
	Message string
}

type Record struct {
	ID     string
	Name   []string
	Emails []string
	Phones []string
}

type Entry struct {
	ID       string
	ParentID string
	Owner    []string
}

type Note struct {
	ID        string
	ParentID  string
	Title     string
	Content   string
	CreatedAt string
}

type Server struct {
	*httptest.Server
	APIKey string

	mu       sync.Mutex
	records  map[string]*Record
	byEmail  map[string]string
	entries  map[string][]*Entry // list -> entries
	notes    []Note
	failures map[string]Failure
	delay    map[string]time.Duration
	calls    map[string]int
	bodies   map[string][]json.RawMessage
}

// NewServer sobe o servidor com as listas informadas já existentes.
func NewServer(apiKey string, lists ...string) *Server {
	s := &Server{
		APIKey:   apiKey,
		records:  map[string]*Record{},
		byEmail:  map[string]string{},
		entries:  map[string][]*Entry{},
		failures: map[string]Failure{},
		delay:    map[string]time.Duration{},
		calls:    map[string]int{},
		bodies:   map[string][]json.RawMessage{},
	}
	for _, l := range lists {
		s.entries[l] = nil
	}

	r := chi.NewRouter()
	r.Use(s.auth)
	r.Put("/v2/objects/{object}/records", s.handleAssertRecord)
	r.Put("/v2/lists/{list}/entries", s.handleAssertListEntry)
	r.Post("/v2/notes", s.handleCreateNote)

	s.Server = httptest.NewServer(r)
	return s
}

// Fail faz a operação responder com erro até ClearFailures.
func (s *Server) Fail(op string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = f
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]Failure{}
}

// Delay atrasa a resposta da operação (para testar timeout).
func (s *Server) Delay(op string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay[op] = d
}

func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// LastBody devolve o último corpo recebido pela operação, decodificado em map.
func (s *Server) LastBody(op string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	bodies := s.bodies[op]
	if len(bodies) == 0 {
		return nil
	}
	var out map[string]any
	_ = json.Unmarshal(bodies[len(bodies)-1], &out)
	return out
}

// SeedEntry insere uma entry direto, sem assert. Serve para criar duplicatas.
func (s *Server) SeedEntry(list, recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[list] = append(s.entries[list], &Entry{ID: uuid.NewString(), ParentID: recordID})
}

func (s *Server) EntriesFor(list, recordID string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries[list] {
		if e.ParentID == recordID {
			out = append(out, *e)
		}
	}
	return out
}

func (s *Server) NotesFor(recordID string) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Note
	for _, n := range s.notes {
		if n.ParentID == recordID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Server) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.APIKey {
			writeError(w, http.StatusUnauthorized, "auth_error", "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// begin registra a chamada e aplica falhas/atrasos configurados. Devolve false se já respondeu.
func (s *Server) begin(op string, w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "Body is not valid JSON")
		return nil, false
	}

	s.mu.Lock()
	s.calls[op]++
	s.bodies[op] = append(s.bodies[op], raw)
	failure, failing := s.failures[op]
	delay := s.delay[op]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return nil, false
		}
	}
	if failing {
		writeError(w, failure.Status, failure.Code, failure.Message)
		return nil, false
	}
	return raw, true
}

func (s *Server) handleAssertRecord(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.begin(OpAssertRecord, w, r)
	if !ok {
		return
	}
	if chi.URLParam(r, "object") != attio.ObjectPeople {
		writeError(w, http.StatusNotFound, "not_found", "Object not found")
		return
	}
	if r.URL.Query().Get("matching_attribute") != attio.MatchingAttributeEmail {
		writeError(w, http.StatusBadRequest, "validation_type", "Unsupported matching attribute")
		return
	}

	var req attio.AssertRecordRequest
	if err := json.Unmarshal(raw, &req); err != nil || len(req.Data.Values.EmailAddresses) == 0 {
		writeError(w, http.StatusBadRequest, "validation_type", "email_addresses is required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Data.Values.EmailAddresses[0]))
	if email == "" {
		writeError(w, http.StatusBadRequest, "validation_type", "email_addresses is required")
		return
	}

	s.mu.Lock()
	id, exists := s.byEmail[email]
	if !exists {
		id = uuid.NewString()
		s.byEmail[email] = id
		s.records[id] = &Record{ID: id}
	}
	rec := s.records[id]
	rec.Name = req.Data.Values.Name
	rec.Phones = req.Data.Values.PhoneNumbers
	rec.Emails = mergeValues(rec.Emails, req.Data.Values.EmailAddresses)
	s.mu.Unlock()

	var resp attio.RecordResponse
	resp.Data.ID = attio.RecordID{WorkspaceID: WorkspaceID, ObjectID: attio.ObjectPeople, RecordID: id}
	resp.Data.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssertListEntry(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.begin(OpAssertListEntry, w, r)
	if !ok {
		return
	}
	list := chi.URLParam(r, "list")

	var req attio.AssertListEntryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_type", "Invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, listExists := s.entries[list]
	if !listExists {
		writeError(w, http.StatusNotFound, "not_found", "List not found")
		return
	}
	if _, ok := s.records[req.Data.ParentRecordID]; !ok || req.Data.ParentObject != attio.ObjectPeople {
		writeError(w, http.StatusNotFound, "not_found", "Parent record not found")
		return
	}

	var matches []*Entry
	for _, e := range entries {
		if e.ParentID == req.Data.ParentRecordID {
			matches = append(matches, e)
		}
	}

	var entry *Entry
	switch len(matches) {
	case 0:
		entry = &Entry{ID: uuid.NewString(), ParentID: req.Data.ParentRecordID}
		s.entries[list] = append(s.entries[list], entry)
	case 1:
		entry = matches[0]
	default:
		writeError(w, http.StatusBadRequest, attio.CodeMultipleMatchResults, "Multiple entries found for parent record")
		return
	}
	entry.Owner = req.Data.EntryValues.Owner

	var resp attio.ListEntryResponse
	resp.Data.ID = attio.EntryID{WorkspaceID: WorkspaceID, ListID: list, EntryID: entry.ID}
	resp.Data.ParentRecordID = entry.ParentID
	resp.Data.ParentObject = attio.ObjectPeople
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.begin(OpCreateNote, w, r)
	if !ok {
		return
	}

	var req attio.CreateNoteRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_type", "Invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[req.Data.ParentRecordID]; !ok || req.Data.ParentObject != attio.ObjectPeople {
		writeError(w, http.StatusNotFound, "not_found", "Parent record not found")
		return
	}

	note := Note{
		ID:        uuid.NewString(),
		ParentID:  req.Data.ParentRecordID,
		Title:     req.Data.Title,
		Content:   req.Data.Content,
		CreatedAt: req.Data.CreatedAt,
	}
	s.notes = append(s.notes, note)

	var resp attio.NoteResponse
	resp.Data.ID = attio.NoteID{WorkspaceID: WorkspaceID, NoteID: note.ID}
	resp.Data.ParentObject = attio.ObjectPeople
	resp.Data.ParentRecordID = note.ParentID
	resp.Data.Title = note.Title
	resp.Data.ContentPlaintext = note.Content
	resp.Data.CreatedAt = note.CreatedAt
	writeJSON(w, http.StatusOK, resp)
}

// Matching attribute multi-valor: adiciona valores novos, não remove os existentes.
func mergeValues(current, incoming []string) []string {
	seen := map[string]bool{}
	for _, v := range current {
		seen[strings.ToLower(v)] = true
	}
	for _, v := range incoming {
		if !seen[strings.ToLower(v)] {
			current = append(current, v)
			seen[strings.ToLower(v)] = true
		}
	}
	return current
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, attio.ErrorResponse{
		StatusCode: status,
		Type:       "invalid_request_error",
		Code:       code,
		Message:    message,
	})
}
