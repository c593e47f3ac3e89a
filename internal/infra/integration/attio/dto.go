package attio

const (
	ObjectPeople           = "people"
	MatchingAttributeEmail = "email_addresses"
	NoteFormatPlaintext    = "plaintext"

	// Código devolvido pelo assert de list entry quando o parent tem mais de uma entry.
	CodeMultipleMatchResults = "multiple_match_results"
)

// --- Records ---

type AssertRecordRequest struct {
	Data RecordData `json:"data"`
}

type RecordData struct {
	Values RecordValues `json:"values"`
}

// Atributos multi-valor vão sempre como array, mesmo vazio. Nunca nil.
type RecordValues struct {
	Name           []string `json:"name"`
	EmailAddresses []string `json:"email_addresses"`
	PhoneNumbers   []string `json:"phone_numbers"`
}

type RecordResponse struct {
	Data struct {
		ID        RecordID `json:"id"`
		CreatedAt string   `json:"created_at"`
	} `json:"data"`
}

type RecordID struct {
	WorkspaceID string `json:"workspace_id"`
	ObjectID    string `json:"object_id"`
	RecordID    string `json:"record_id"`
}

// --- List entries ---

type AssertListEntryRequest struct {
	Data ListEntryData `json:"data"`
}

type ListEntryData struct {
	ParentRecordID string      `json:"parent_record_id"`
	ParentObject   string      `json:"parent_object"`
	EntryValues    EntryValues `json:"entry_values"`
}

type EntryValues struct {
	Owner []string `json:"owner"`
}

type ListEntryResponse struct {
	Data struct {
		ID             EntryID `json:"id"`
		ParentRecordID string  `json:"parent_record_id"`
		ParentObject   string  `json:"parent_object"`
		CreatedAt      string  `json:"created_at"`
	} `json:"data"`
}

type EntryID struct {
	WorkspaceID string `json:"workspace_id"`
	ListID      string `json:"list_id"`
	EntryID     string `json:"entry_id"`
}

// --- Notes ---

type CreateNoteRequest struct {
	Data NoteData `json:"data"`
}

type NoteData struct {
	ParentObject   string `json:"parent_object"`
	ParentRecordID string `json:"parent_record_id"`
	Title          string `json:"title"`
	Format         string `json:"format"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

type NoteResponse struct {
	Data struct {
		ID               NoteID `json:"id"`
		ParentObject     string `json:"parent_object"`
		ParentRecordID   string `json:"parent_record_id"`
		Title            string `json:"title"`
		ContentPlaintext string `json:"content_plaintext"`
		CreatedAt        string `json:"created_at"`
	} `json:"data"`
}

type NoteID struct {
	WorkspaceID string `json:"workspace_id"`
	NoteID      string `json:"note_id"`
}

// ErrorResponse é o corpo de erro padrão da API v2.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}
