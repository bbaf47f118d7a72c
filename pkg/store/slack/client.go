package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
)

const defaultTimeout = 10 * time.Second

// Client delivers chat notifications to the Slack relay. One request
// per message, single attempt, fixed timeout.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewClient(url, apiKey string) *Client {
	return &Client{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Send posts one message. An API-level errors or exclusions entry is a
// delivery failure even when the HTTP status is 200.
func (c *Client) Send(ctx context.Context, message api.SlackMessage) error {
	logger := zerolog.Ctx(ctx)

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close slack response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read slack response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("slack responded %d: %s", resp.StatusCode, body)
	}

	var response api.SlackResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to decode slack response: %w", err)
	}
	if len(response.Errors) > 0 || len(response.Exclusions) > 0 {
		return fmt.Errorf("slack rejected message for channels %s: errors=%s exclusions=%s",
			strings.Join(message.Channels, ","),
			strings.Join(response.Errors, ","),
			strings.Join(response.Exclusions, ","))
	}
	return nil
}
