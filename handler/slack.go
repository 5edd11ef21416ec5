package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/cloudservices/kbot/service"
	"github.com/cloudservices/kbot/storage"
	"github.com/cloudservices/kbot/types"
)

// SlackHandler answers slash commands: verify the shared-secret token, run
// the ask pipeline, archive the record in the output bucket, deliver the
// message to the response_url.
type SlackHandler struct {
	pipeline     Asker
	slack        SlackPoster
	store        storage.ObjectStore
	outputBucket string
	token        string
}

func NewSlackHandler(pipeline Asker, slack SlackPoster, store storage.ObjectStore, outputBucket, token string) *SlackHandler {
	return &SlackHandler{
		pipeline:     pipeline,
		slack:        slack,
		store:        store,
		outputBucket: outputBucket,
		token:        token,
	}
}

func (h *SlackHandler) HandleCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		cmd, err := parseSlackCommand(r)
		if err != nil {
			log.Printf("Error parsing request body: %v", err)
			sendError(w, "Invalid request body. Please provide a valid Slack event.", http.StatusBadRequest)
			return
		}
		if cmd.Token != h.token {
			log.Println("Invalid Slack verification token")
			sendError(w, "Invalid request body. Please provide a valid Slack event.", http.StatusBadRequest)
			return
		}
		log.Printf("Received prompt from Slack: %s", cmd.Text)

		_, response, err := h.pipeline.Ask(r.Context(), cmd.Text)
		if err != nil {
			log.Printf("Generation error: %v", err)
			sendError(w, "Error processing data with the model", http.StatusInternalServerError)
			return
		}

		outputKey := fmt.Sprintf("destination/response-%s.json", cmd.Text)
		record, _ := json.Marshal(types.GenerationRecord{Prompt: cmd.Text, Response: response})
		if err := h.store.Put(r.Context(), h.outputBucket, outputKey, record); err != nil {
			log.Printf("Error writing output to storage: %v", err)
			sendError(w, "Error writing output to storage", http.StatusInternalServerError)
			return
		}

		msg := service.FormatMessage(cmd.Text, response)
		if err := h.slack.PostResponse(r.Context(), cmd.ResponseURL, msg); err != nil {
			log.Printf("Error sending response to Slack: %v", err)
			sendError(w, "Error sending response to Slack", http.StatusInternalServerError)
			return
		}

		sendJSON(w, http.StatusOK, msg)
	}
}

func parseSlackCommand(r *http.Request) (types.SlackCommand, error) {
	if err := r.ParseForm(); err != nil {
		return types.SlackCommand{}, err
	}
	cmd := types.SlackCommand{
		Token:       r.PostForm.Get("token"),
		Text:        r.PostForm.Get("text"),
		ResponseURL: r.PostForm.Get("response_url"),
	}
	if cmd.Token == "" {
		return types.SlackCommand{}, fmt.Errorf("missing token field")
	}
	if cmd.ResponseURL == "" {
		return types.SlackCommand{}, fmt.Errorf("missing response_url field")
	}
	return cmd, nil
}
