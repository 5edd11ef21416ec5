package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/cloudservices/kbot/storage"
	"github.com/cloudservices/kbot/types"
)

// TicketHandler answers tracker tickets: the issue record previously exported
// to the source bucket supplies the query, and the generated answer is stored
// back next to it.
type TicketHandler struct {
	pipeline     Asker
	store        storage.ObjectStore
	sourceBucket string
	outputBucket string
}

// TicketRecord is the stored answer for one processed ticket.
type TicketRecord struct {
	TicketNumber string `json:"ticket_number"`
	Response     string `json:"response"`
}

func NewTicketHandler(pipeline Asker, store storage.ObjectStore, sourceBucket, outputBucket string) *TicketHandler {
	return &TicketHandler{
		pipeline:     pipeline,
		store:        store,
		sourceBucket: sourceBucket,
		outputBucket: outputBucket,
	}
}

func (h *TicketHandler) HandleAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.TicketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TicketNumber == "" {
			log.Printf("Error parsing request body: %v", err)
			sendError(w, "Invalid request body. Please provide a valid JSON with a 'ticket_number' field.", http.StatusBadRequest)
			return
		}

		sourceKey := fmt.Sprintf("source/CLOUD-%s.json", req.TicketNumber)
		body, err := h.store.Get(r.Context(), h.sourceBucket, sourceKey)
		if err != nil {
			log.Printf("Error fetching data from storage: %v", err)
			sendError(w, fmt.Sprintf("Error fetching data from storage for ticket %s", req.TicketNumber), http.StatusInternalServerError)
			return
		}

		var issue types.IssueRecord
		if err := json.Unmarshal(body, &issue); err != nil {
			log.Printf("Error decoding JSON: %v", err)
			sendError(w, "Error decoding the stored issue record. Please check the file format.", http.StatusInternalServerError)
			return
		}

		_, response, err := h.pipeline.Ask(r.Context(), issue.Description)
		if err != nil {
			log.Printf("Generation error: %v", err)
			sendError(w, "Error processing data with the model", http.StatusInternalServerError)
			return
		}

		outputKey := fmt.Sprintf("destination/response-%s.json", req.TicketNumber)
		record, _ := json.Marshal(TicketRecord{TicketNumber: req.TicketNumber, Response: response})
		if err := h.store.Put(r.Context(), h.outputBucket, outputKey, record); err != nil {
			log.Printf("Error writing output to storage: %v", err)
			sendError(w, fmt.Sprintf("Error writing output for ticket %s to storage", req.TicketNumber), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Processed ticket %s successfully", req.TicketNumber)
	}
}
