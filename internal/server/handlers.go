package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/tripguide/tripd/internal"
	"github.com/tripguide/tripd/internal/chat"
)

// Bounds of GET /transcripts?limit=N.
const (
	defaultTranscriptLimit = 20
	maxTranscriptLimit     = 200
)

const welcome = "Welcome to the tripd travel planner!"

type chatRequest struct {
	Message             string   `json:"message"`
	Role                *string  `json:"role"`
	ConversationHistory []string `json:"conversation_history"`
}

type chatResponse struct {
	Reply               string   `json:"reply"`
	ConversationHistory []string `json:"conversation_history"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type statusResponse struct {
	Running  bool   `json:"running"`
	Version  string `json:"version"`
	Pid      int    `json:"pid"`
	Uptime   string `json:"uptime"`
	Provider string `json:"provider"`
	Chats    int    `json:"chats"`
	Failures int    `json:"failures"`
}

type transcriptEntry struct {
	ID       int64     `json:"id"`
	Time     time.Time `json:"time"`
	Provider string    `json:"provider"`
	Message  string    `json:"message"`
	Reply    string    `json:"reply"`
	Error    string    `json:"error,omitempty"`
}

// Handles GET /.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	slog.Info("home route accessed")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, welcome)
}

// Handles POST /chat.
//
// A provider failure answers 500 with both the error and the fallback reply.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	slog.Info("received user input", "message", req.Message)

	reply, err := s.service.Chat(r.Context(), chat.Request{
		Message: req.Message,
		Role:    req.Role,
		History: req.ConversationHistory,
	})
	s.countChat(err != nil)

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   err.Error(),
			Message: reply.Text,
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:               reply.Text,
		ConversationHistory: reply.History,
	})
}

// Handles GET /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	chats, failures := s.chats, s.failures
	s.mu.Unlock()

	var uptime time.Duration
	if !s.startedAt.IsZero() {
		uptime = time.Since(s.startedAt).Truncate(time.Second)
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Running:  true,
		Version:  internal.VersionString(),
		Pid:      os.Getpid(),
		Uptime:   uptime.String(),
		Provider: s.service.Provider(),
		Chats:    chats,
		Failures: failures,
	})
}

// Handles GET /transcripts.
func (s *Server) handleTranscripts(w http.ResponseWriter, r *http.Request) {
	if s.transcripts == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "transcripts are not enabled"})
		return
	}

	limit := defaultTranscriptLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxTranscriptLimit)
	}

	entries, err := s.transcripts.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("listing transcripts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "listing transcripts failed"})
		return
	}

	out := make([]transcriptEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, transcriptEntry{
			ID:       e.ID,
			Time:     e.Time,
			Provider: e.Provider,
			Message:  e.Message,
			Reply:    e.Reply,
			Error:    e.Error,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// Decodes a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body must be a JSON object")
		}
		return err
	}
	return nil
}

// Writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}
