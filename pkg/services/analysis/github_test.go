package analysis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

func githubAudit(repos ...string) domain.Audit {
	report := make([]json.RawMessage, 0, len(repos))
	for _, repo := range repos {
		report = append(report, json.RawMessage(repo))
	}
	return domain.Audit{Type: TypeGithub, Report: report}
}

func TestGithubAnalyser_SkipsForks(t *testing.T) {
	audit := githubAudit(`{"name": "forked-repo", "isFork": true, "teamPermissions": "WRITE"}`)

	findings, err := NewGithubAnalyser(false).Analyse(context.Background(), audit)

	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestGithubAnalyser_SignedCommitsOnAnyRuleSuffices(t *testing.T) {
	audit := githubAudit(`{
		"name": "repo-a",
		"teamPermissions": "ADMIN",
		"branchProtectionRules": [
			{"requiresCommitSignatures": false},
			{"requiresCommitSignatures": true}
		]
	}`)

	findings, err := NewGithubAnalyser(false).Analyse(context.Background(), audit)

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Empty(t, findings[0].Findings)
}

func TestGithubAnalyser_Violations(t *testing.T) {
	audit := githubAudit(`{
		"name": "repo-b",
		"teamPermissions": "WRITE",
		"hasWikiEnabled": true,
		"branchProtectionRules": [{"requiresCommitSignatures": false}]
	}`)

	t.Run("wiki check disabled", func(t *testing.T) {
		findings, err := NewGithubAnalyser(false).Analyse(context.Background(), audit)

		require.NoError(t, err)
		require.Len(t, findings, 1)
		assert.Equal(t, []string{
			"repository should have signed commits enabled",
			"repository team permissions should be set to admin",
		}, findings[0].Findings)
	})

	t.Run("wiki check enabled", func(t *testing.T) {
		findings, err := NewGithubAnalyser(true).Analyse(context.Background(), audit)

		require.NoError(t, err)
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Findings, "repository wiki should be disabled")
	})
}
