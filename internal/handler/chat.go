package handler

import (
	"log/slog"
	"net/http"

	"luman/internal/domain/models"
	"luman/internal/domain/services"
	"luman/internal/httputil"
)

// ChatHandler handles the per-note AI chat HTTP requests.
type ChatHandler struct {
	chatService services.ChatService
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService services.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Send relays a chat turn, streaming the reply as plain text chunks
// POST /api/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req services.RelayRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = httputil.GetUserID(r)

	writer := newChunkWriter(w)
	err := h.chatService.Relay(r.Context(), &req, writer)
	if err != nil {
		// Once chunks are on the wire the status line is gone; all we
		// can do is stop.
		if writer.wrote {
			h.logger.Warn("chat stream aborted", "note_id", req.NoteID, "error", err)
			return
		}
		handleError(w, err)
	}
}

// History returns a note's chat transcript
// GET /api/chat/{noteId}
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	noteID, ok := PathParam(w, r, "noteId", "Note ID")
	if !ok {
		return
	}

	messages, err := h.chatService.History(r.Context(), noteID)
	if err != nil {
		// History is a convenience view; an empty panel beats a broken
		// chat page.
		h.logger.Error("failed to load chat history", "note_id", noteID, "error", err)
		messages = []models.ChatMessage{}
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}

// chunkWriter streams relay output, flushing every chunk so the client
// renders text while the model is still talking.
type chunkWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	wrote   bool
}

func newChunkWriter(w http.ResponseWriter) *chunkWriter {
	flusher, _ := w.(http.Flusher)
	return &chunkWriter{w: w, flusher: flusher}
}

func (c *chunkWriter) WriteChunk(text string) error {
	if !c.wrote {
		c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		c.w.Header().Set("Cache-Control", "no-cache")
		c.w.Header().Set("X-Accel-Buffering", "no")
		c.wrote = true
	}

	if _, err := c.w.Write([]byte(text)); err != nil {
		return err
	}
	if c.flusher != nil {
		c.flusher.Flush()
	}
	return nil
}
