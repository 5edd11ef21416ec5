package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloudservices/kbot/types"
)

// Asker is the shared ask pipeline as seen by the handlers.
type Asker interface {
	Ask(ctx context.Context, query string) (prompt, response string, err error)
}

// SlackPoster delivers a message to a command's response_url.
type SlackPoster interface {
	PostResponse(ctx context.Context, url string, msg types.SlackMessage) error
}

func sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(message))
}

func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
