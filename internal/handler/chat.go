package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filmatch/match-service/internal/domain"
)

// POST /users/{userID}/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Message must not be empty")
		return
	}

	reply, err := h.service.Chat(r.Context(), userID, req.Message, req.History)
	if err != nil {
		if errors.Is(err, domain.ErrChatUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "chat_unavailable",
				"Chat assistant is temporarily unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}
