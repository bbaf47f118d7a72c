package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const (
	itemTypeIamAccessKey = "iam_access_key"
	maxKeyAgeDays        = 30
)

type iamResults struct {
	AccessKeys []iamAccessKey `json:"iam_access_keys"`
}

type iamAccessKey struct {
	ID       string     `json:"id"`
	UserName string     `json:"user_name"`
	Created  time.Time  `json:"created"`
	LastUsed *time.Time `json:"last_used"`
}

// IamAnalyser flags access keys older than the rotation threshold.
type IamAnalyser struct {
	now func() time.Time
}

func NewIamAnalyser() *IamAnalyser {
	return &IamAnalyser{now: time.Now}
}

func (a *IamAnalyser) Analyse(_ context.Context, audit domain.Audit) ([]domain.Finding, error) {
	var findings []domain.Finding
	for _, raw := range audit.Report {
		block, err := decodeBlock(raw, audit.Type)
		if err != nil {
			return nil, err
		}

		var results iamResults
		if err := json.Unmarshal(block.Results, &results); err != nil {
			return nil, fmt.Errorf("failed to decode %s results: %w", audit.Type, err)
		}

		for _, key := range results.AccessKeys {
			ageDays := daysBetween(key.Created, a.now())
			if ageDays <= maxKeyAgeDays {
				continue
			}
			finding := domain.NewFinding(itemTypeIamAccessKey, key.ID, []string{"key should be rotated"}).
				WithDescription(a.describeKey(key, ageDays)).
				WithAccount(block.Account.toDomain()).
				WithRegion(block.Region)
			findings = append(findings, finding)
		}
	}
	return findings, nil
}

func (a *IamAnalyser) describeKey(key iamAccessKey, ageDays int) string {
	if key.LastUsed == nil {
		return fmt.Sprintf("this key is %s old and belongs to %s", pluralDays(ageDays), key.UserName)
	}
	return fmt.Sprintf("this key is %s old, belongs to %s and was last used %s",
		pluralDays(ageDays), key.UserName, lastUsedPhrase(daysBetween(*key.LastUsed, a.now())))
}

func lastUsedPhrase(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
