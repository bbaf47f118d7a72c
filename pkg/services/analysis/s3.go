package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const (
	itemTypeS3Bucket = "s3_bucket"
	tagUnset         = "unset"
	sensitivityHigh  = "high"
)

type s3Results struct {
	Buckets []s3Bucket `json:"buckets"`
}

type s3Bucket struct {
	Name       string `json:"name"`
	Encryption struct {
		Enabled bool `json:"enabled"`
	} `json:"encryption"`
	PublicAccessBlock struct {
		Enabled bool `json:"enabled"`
	} `json:"public_access_block"`
	DataTagging struct {
		Expiry      string `json:"expiry"`
		Sensitivity string `json:"sensitivity"`
	} `json:"data_tagging"`
	MFADelete struct {
		Enabled bool `json:"enabled"`
	} `json:"mfa_delete"`
}

// S3Analyser checks bucket encryption, public access, data tagging and,
// for high-sensitivity buckets, mfa-delete.
type S3Analyser struct{}

func NewS3Analyser() *S3Analyser {
	return &S3Analyser{}
}

func (a *S3Analyser) Analyse(_ context.Context, audit domain.Audit) ([]domain.Finding, error) {
	var findings []domain.Finding
	for _, raw := range audit.Report {
		block, err := decodeBlock(raw, audit.Type)
		if err != nil {
			return nil, err
		}

		var results s3Results
		if err := json.Unmarshal(block.Results, &results); err != nil {
			return nil, fmt.Errorf("failed to decode %s results: %w", audit.Type, err)
		}

		for _, bucket := range results.Buckets {
			finding := domain.NewFinding(itemTypeS3Bucket, bucket.Name, checkBucket(bucket)).
				WithAccount(block.Account.toDomain()).
				WithRegion(block.Region)
			findings = append(findings, finding)
		}
	}
	return findings, nil
}

func checkBucket(bucket s3Bucket) []string {
	var violations []string
	if !bucket.Encryption.Enabled {
		violations = append(violations, "bucket should be encrypted")
	}
	if !bucket.PublicAccessBlock.Enabled {
		violations = append(violations, "bucket should not allow public access")
	}
	if !tagSet(bucket.DataTagging.Expiry) || !tagSet(bucket.DataTagging.Sensitivity) {
		violations = append(violations, "bucket should have data expiry and data sensitivity tags")
	}
	// mfa-delete is only mandated for high-sensitivity buckets
	if bucket.DataTagging.Sensitivity == sensitivityHigh && !bucket.MFADelete.Enabled {
		violations = append(violations, "bucket should have mfa-delete")
	}
	return violations
}

func tagSet(value string) bool {
	return value != "" && value != tagUnset
}
