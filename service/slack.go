package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudservices/kbot/types"
)

// SlackClient delivers the generated answer to a command's response_url.
type SlackClient struct {
	httpClient *http.Client
}

func NewSlackClient() *SlackClient {
	return &SlackClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FormatMessage builds the in-channel message echoing the prompt and the
// generated response.
func FormatMessage(query, response string) types.SlackMessage {
	return types.SlackMessage{
		ResponseType: "in_channel",
		Text:         fmt.Sprintf("*Prompt:* %s\n*Response:* %s", query, response),
	}
}

// PostResponse POSTs the message to the caller-supplied URL. There is no
// retry; a failed delivery is the caller's error to report.
func (c *SlackClient) PostResponse(ctx context.Context, url string, msg types.SlackMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshaling slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending response to Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}
