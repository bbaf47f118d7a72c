package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const itemTypeGithubWebhook = "github_webhook"

type webhookRepository struct {
	Name     string `json:"name"`
	Webhooks []struct {
		URL         string `json:"url"`
		InsecureSSL bool   `json:"insecure_ssl"`
	} `json:"webhooks"`
}

// GithubWebhookAnalyser flags webhooks that disable SSL verification or
// point at hosts outside the known-host list. Findings are keyed by
// webhook URL: when the same URL is configured on several repositories,
// every repository's violations accumulate under one finding.
type GithubWebhookAnalyser struct {
	knownHosts []string
}

func NewGithubWebhookAnalyser(knownHosts []string) *GithubWebhookAnalyser {
	return &GithubWebhookAnalyser{knownHosts: knownHosts}
}

func (a *GithubWebhookAnalyser) Analyse(_ context.Context, audit domain.Audit) ([]domain.Finding, error) {
	violationsByURL := make(map[string][]string)
	for _, raw := range audit.Report {
		var repo webhookRepository
		if err := json.Unmarshal(raw, &repo); err != nil {
			return nil, fmt.Errorf("failed to decode %s report block: %w", audit.Type, err)
		}

		for _, webhook := range repo.Webhooks {
			if webhook.InsecureSSL {
				violationsByURL[webhook.URL] = append(violationsByURL[webhook.URL],
					fmt.Sprintf("webhook with insecure SSL found in repository %s", repo.Name))
			}
			if !a.isKnownHost(webhook.URL) {
				violationsByURL[webhook.URL] = append(violationsByURL[webhook.URL],
					fmt.Sprintf("unknown webhook found in repository %s", repo.Name))
			}
		}
	}

	urls := make([]string, 0, len(violationsByURL))
	for u := range violationsByURL {
		urls = append(urls, u)
	}
	slices.Sort(urls)

	findings := make([]domain.Finding, 0, len(urls))
	for _, u := range urls {
		findings = append(findings, domain.NewFinding(itemTypeGithubWebhook, u, violationsByURL[u]))
	}
	return findings, nil
}

func (a *GithubWebhookAnalyser) isKnownHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return slices.Contains(a.knownHosts, parsed.Hostname())
}
