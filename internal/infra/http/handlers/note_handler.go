package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-logger/glog"

	"github.com/xavierca1/ligue-attio-sync/internal/usecase"
)

type NoteHandler struct {
	Notes  usecase.NoteCreator
	Logger glog.Logger
}

func NewNoteHandler(notes usecase.NoteCreator, logger glog.Logger) *NoteHandler {
	if logger == nil {
		logger = glog.Nop()
	}
	return &NoteHandler{Notes: notes, Logger: logger}
}

type CreateNoteResponse struct {
	Success   bool              `json:"success"`
	NoteID    string            `json:"noteId,omitempty"`
	Content   string            `json:"content,omitempty"`
	ErrorCode usecase.ErrorKind `json:"errorCode,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// Handle cria uma nota avulsa. Cada chamada cria uma nota nova; o cliente não deve repetir em timeout.
func (h *NoteHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	note, err := h.Notes.Create(r.Context(), input)
	if err != nil {
		resp := CreateNoteResponse{Success: false, Message: "Error creating note"}
		var we *usecase.WriteError
		if errors.As(err, &we) {
			resp.ErrorCode = we.Kind
			if we.Kind == usecase.KindValidation {
				resp.Message = we.Message
			}
		}
		h.Logger.Error("❌ Erro ao criar nota", "record_id", input.RecordID, "error", err)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	writeJSON(w, http.StatusOK, CreateNoteResponse{
		Success: true,
		NoteID:  note.NoteID,
		Content: note.Content,
	})
}
