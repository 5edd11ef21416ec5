package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cloudservices/kbot/types"
)

// AskHandler answers direct JSON questions with the prompt and the generated
// response echoed back.
type AskHandler struct {
	pipeline Asker
}

func NewAskHandler(pipeline Asker) *AskHandler {
	return &AskHandler{pipeline: pipeline}
}

func (h *AskHandler) HandleAsk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error parsing request body: %v", err)
			sendError(w, "Invalid request body. Please provide a valid JSON with a 'text' field.", http.StatusBadRequest)
			return
		}
		query := req.Query()
		if query == "" {
			sendError(w, "Invalid request body. Please provide a valid JSON with a 'text' field.", http.StatusBadRequest)
			return
		}
		log.Printf("Received prompt: %s", query)

		prompt, response, err := h.pipeline.Ask(r.Context(), query)
		if err != nil {
			log.Printf("Generation error: %v", err)
			sendError(w, "Error processing data with the model", http.StatusInternalServerError)
			return
		}

		sendJSON(w, http.StatusOK, types.AskResponse{
			Prompt:   prompt,
			Response: response,
		})
	}
}
