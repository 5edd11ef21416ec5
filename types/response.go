package types

type AskResponse struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// SlackMessage is the body posted back to the command's response_url.
type SlackMessage struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// GenerationRecord is what gets written to the output bucket after a
// successful generation.
type GenerationRecord struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}
