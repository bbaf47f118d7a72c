package pagerduty

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
)

func testEvent() api.PagerDutyEvent {
	return api.PagerDutyEvent{
		RoutingKey:  "key-infra",
		EventAction: "trigger",
		Client:      "compliance-alerting",
		ClientURL:   "https://alerting.example.org",
		Payload: api.PagerDutyPayload{
			Summary:  "AWS_EC2_OPERATIONAL_ISSUE",
			Source:   "EC2",
			Severity: "critical",
		},
		Service: "infra",
	}
}

func TestClient_SendSuccess(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(api.PagerDutyResponse{Status: "success"})
	}))
	defer server.Close()

	err := NewClient(server.URL).Send(context.Background(), testEvent())

	require.NoError(t, err)
	assert.Equal(t, "key-infra", received["routing_key"])
	assert.Equal(t, "trigger", received["event_action"])
	assert.NotContains(t, received, "Service")
}

func TestClient_NonSuccessStatusFieldFailsDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(api.PagerDutyResponse{
			Status: "invalid event",
			Errors: []string{"routing_key is invalid"},
		})
	}))
	defer server.Close()

	err := NewClient(server.URL).Send(context.Background(), testEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "routing_key is invalid")
}

func TestClient_HttpErrorFailsDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	err := NewClient(server.URL).Send(context.Background(), testEvent())

	assert.Error(t, err)
}
