package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
)

// Completer is the upstream the handler forwards on-topic messages to.
// Satisfied by *Client; tests substitute a stub.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Handler serves POST /api/chat: keyword-filter the last user message,
// answer off-topic ones with the fixed Czech reply, and proxy the rest
// to the upstream.
type Handler struct {
	filter   *Filter
	upstream Completer
}

// NewHandler creates the chat proxy handler.
func NewHandler(filter *Filter, upstream Completer) *Handler {
	if filter == nil {
		filter = NewFilter()
	}
	return &Handler{filter: filter, upstream: upstream}
}

type chatRequest struct {
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	last := lastUserMessage(req.Messages)
	if last == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no user message"})
		return
	}

	if !h.filter.OnTopic(last) {
		writeJSON(w, http.StatusOK, chatResponse{Reply: OffTopicReply})
		return
	}

	reply, err := h.upstream.Complete(r.Context(), req.Messages)
	if err != nil {
		log.Error("chat: upstream failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "chat service unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// lastUserMessage returns the content of the newest user-role message.
func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("chat: write response failed", "err", err)
	}
}
