package pagerduty

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

// Client delivers page events to the PagerDuty events API. One request
// per event, single attempt, fixed timeout.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Send posts one event. A response status other than "success" is a
// delivery failure even when the HTTP status is 2xx.
func (c *Client) Send(ctx context.Context, event api.PagerDutyEvent) error {
	logger := zerolog.Ctx(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode pagerduty event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create pagerduty request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send pagerduty event: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close pagerduty response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read pagerduty response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("pagerduty responded %d: %s", resp.StatusCode, body)
	}

	var response api.PagerDutyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to decode pagerduty response: %w", err)
	}
	if response.Status != "success" || len(response.Errors) > 0 {
		return fmt.Errorf("pagerduty rejected event for service %s: status=%s errors=%s",
			event.Service, response.Status, strings.Join(response.Errors, ","))
	}
	return nil
}
