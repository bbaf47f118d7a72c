package notification

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/api"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

// Severity colour codes for rendered chat messages.
const (
	colorHigh = "#e01e5a"
	colorLow  = "#d0d0d0"
)

// AccountResolver looks up account metadata by identifier. Lookups are
// expected to degrade to sentinel values rather than fail.
type AccountResolver interface {
	Resolve(ctx context.Context, identifier string) (domain.Account, error)
}

// Mapper resolves, per finding, the union of channels declared by every
// matching mapping config plus the always-present central channel, and
// renders the chat message for that finding.
type Mapper struct {
	centralChannel string
	resolver       AccountResolver
}

func NewMapper(centralChannel string, resolver AccountResolver) *Mapper {
	return &Mapper{centralChannel: centralChannel, resolver: resolver}
}

// Map produces one message per finding, sorted by (title, header) so
// delivery order is reproducible. Account lookups are memoized for the
// duration of the call; the memo is never shared across runs.
func (m *Mapper) Map(ctx context.Context, findings []domain.Finding, mappings []domain.MappingConfig) []api.SlackMessage {
	resolved := make(map[string]domain.Account)
	messages := make([]api.SlackMessage, 0, len(findings))
	for _, finding := range findings {
		messages = append(messages, api.SlackMessage{
			Channels: m.channels(finding, mappings),
			Header:   m.header(ctx, finding, resolved),
			Title:    finding.Item,
			Text:     renderText(finding),
			Color:    severityColor(finding.Severity),
		})
	}
	slices.SortFunc(messages, func(a, b api.SlackMessage) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.Header, b.Header)
	})
	return messages
}

func (m *Mapper) channels(finding domain.Finding, mappings []domain.MappingConfig) []string {
	set := map[string]struct{}{m.centralChannel: {}}
	for _, mapping := range mappings {
		if mapping.Channel != "" && mapping.Matches(finding) {
			set[mapping.Channel] = struct{}{}
		}
	}
	channels := make([]string, 0, len(set))
	for channel := range set {
		channels = append(channels, channel)
	}
	slices.Sort(channels)
	return channels
}

func (m *Mapper) header(ctx context.Context, finding domain.Finding, resolved map[string]domain.Account) string {
	if finding.Account == nil {
		return finding.RegionName
	}

	account, ok := resolved[finding.Account.Identifier]
	if !ok {
		var err error
		account, err = m.resolver.Resolve(ctx, finding.Account.Identifier)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("account", finding.Account.Identifier).
				Msg("failed to resolve account")
			account = domain.Account{
				Identifier:  finding.Account.Identifier,
				Name:        domain.UnknownAccountName,
				SlackHandle: domain.UnknownTeamHandle,
			}
		}
		resolved[finding.Account.Identifier] = account
	}

	parts := []string{fmt.Sprintf("%s (%s)", account.Name, account.Identifier)}
	if finding.RegionName != "" {
		parts = append(parts, finding.RegionName)
	}
	if account.SlackHandle != "" {
		parts = append(parts, "@"+account.SlackHandle)
	}
	return strings.Join(parts, " ")
}

func renderText(finding domain.Finding) string {
	joined := finding.JoinedFindings()
	switch {
	case finding.Description != "" && joined != "":
		return finding.Description + "\n\n" + joined
	case finding.Description != "":
		return finding.Description
	default:
		return joined
	}
}

func severityColor(severity domain.Severity) string {
	if severity == domain.SeverityLow {
		return colorLow
	}
	return colorHigh
}
