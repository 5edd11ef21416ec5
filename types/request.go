package types

// SlackCommand is the parsed form-encoded slash command payload.
type SlackCommand struct {
	Token       string
	Text        string
	ResponseURL string
}

type AskRequest struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt,omitempty"`
}

// Query returns whichever field carries the question text.
func (r AskRequest) Query() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Prompt
}

type TicketRequest struct {
	TicketNumber string `json:"ticket_number"`
}
