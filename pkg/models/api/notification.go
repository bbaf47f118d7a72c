package api

// SlackMessage is one chat notification as accepted by the Slack relay:
// a set of destination channels plus the rendered content.
type SlackMessage struct {
	Channels []string `json:"slackChannels"`
	Header   string   `json:"header"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Color    string   `json:"color"`
}

// SlackResponse is the relay's per-request outcome. A non-empty Errors
// or Exclusions list marks the delivery as failed even on HTTP 200.
type SlackResponse struct {
	Successes  []string `json:"successes,omitempty"`
	Errors     []string `json:"errors,omitempty"`
	Exclusions []string `json:"exclusions,omitempty"`
}

// PagerDutyPayload is the event body nested inside a PagerDuty v2 event.
type PagerDutyPayload struct {
	Summary       string         `json:"summary"`
	Source        string         `json:"source"`
	Component     string         `json:"component,omitempty"`
	Class         string         `json:"class,omitempty"`
	Group         string         `json:"group,omitempty"`
	Severity      string         `json:"severity"`
	Timestamp     string         `json:"timestamp,omitempty"`
	CustomDetails map[string]any `json:"custom_details,omitempty"`
}

// PagerDutyEvent is one page request: a payload routed to one service's
// integration key. The client identity block is fixed per deployment.
type PagerDutyEvent struct {
	RoutingKey  string           `json:"routing_key"`
	EventAction string           `json:"event_action"`
	Client      string           `json:"client"`
	ClientURL   string           `json:"client_url"`
	Payload     PagerDutyPayload `json:"payload"`

	// Service is the configured service name the routing key was resolved
	// from; used for ordering and logs, not serialized.
	Service string `json:"-"`
}

// PagerDutyResponse is the events API outcome; Status other than
// "success" or a non-empty Errors list marks the delivery as failed.
type PagerDutyResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}
