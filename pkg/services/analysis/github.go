package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const itemTypeGithubRepository = "github_repository"

type githubRepository struct {
	Name                  string `json:"name"`
	IsFork                bool   `json:"isFork"`
	HasWikiEnabled        bool   `json:"hasWikiEnabled"`
	TeamPermissions       string `json:"teamPermissions"`
	BranchProtectionRules []struct {
		RequiresCommitSignatures bool `json:"requiresCommitSignatures"`
	} `json:"branchProtectionRules"`
}

// GithubAnalyser checks repository protection settings. Forked
// repositories are skipped: their settings are inherited from upstream
// and not ours to fix.
type GithubAnalyser struct {
	enforceWikiDisabled bool
}

func NewGithubAnalyser(enforceWikiDisabled bool) *GithubAnalyser {
	return &GithubAnalyser{enforceWikiDisabled: enforceWikiDisabled}
}

func (a *GithubAnalyser) Analyse(_ context.Context, audit domain.Audit) ([]domain.Finding, error) {
	var findings []domain.Finding
	for _, raw := range audit.Report {
		var repo githubRepository
		if err := json.Unmarshal(raw, &repo); err != nil {
			return nil, fmt.Errorf("failed to decode %s report block: %w", audit.Type, err)
		}
		if repo.IsFork {
			continue
		}
		findings = append(findings, domain.NewFinding(itemTypeGithubRepository, repo.Name, a.checkRepository(repo)))
	}
	return findings, nil
}

func (a *GithubAnalyser) checkRepository(repo githubRepository) []string {
	var violations []string
	if !hasSignedCommits(repo) {
		violations = append(violations, "repository should have signed commits enabled")
	}
	if repo.TeamPermissions != "ADMIN" {
		violations = append(violations, "repository team permissions should be set to admin")
	}
	if a.enforceWikiDisabled && repo.HasWikiEnabled {
		violations = append(violations, "repository wiki should be disabled")
	}
	return violations
}

// hasSignedCommits is satisfied by any one branch protection rule
// requiring commit signatures.
func hasSignedCommits(repo githubRepository) bool {
	for _, rule := range repo.BranchProtectionRules {
		if rule.RequiresCommitSignatures {
			return true
		}
	}
	return false
}
