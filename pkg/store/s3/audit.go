package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

// ObjectsAPI is the slice of the S3 client this package uses.
type ObjectsAPI interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

// AuditStore fetches audit reports. The logical report type of an
// object is derived from its key via the configured prefix map.
type AuditStore struct {
	client      ObjectsAPI
	reportTypes map[string]string // key prefix -> audit type
}

func NewAuditStore(client ObjectsAPI, reportTypes map[string]string) *AuditStore {
	return &AuditStore{client: client, reportTypes: reportTypes}
}

// FetchAudit reads the object at (bucket, key) and parses it as a list
// of per-subject report blocks.
func (s *AuditStore) FetchAudit(ctx context.Context, bucket, key string) (domain.Audit, error) {
	auditType, err := s.auditType(key)
	if err != nil {
		return domain.Audit{}, err
	}

	body, err := s.fetchObject(ctx, bucket, key)
	if err != nil {
		return domain.Audit{}, err
	}

	var report []json.RawMessage
	if err := json.Unmarshal(body, &report); err != nil {
		return domain.Audit{}, fmt.Errorf("failed to parse audit report s3://%s/%s: %w", bucket, key, err)
	}
	return domain.Audit{Type: auditType, Report: report}, nil
}

func (s *AuditStore) auditType(key string) (string, error) {
	for prefix, auditType := range s.reportTypes {
		if strings.HasPrefix(key, prefix) {
			return auditType, nil
		}
	}
	return "", fmt.Errorf("no report type configured for key %q", key)
}

func (s *AuditStore) fetchObject(ctx context.Context, bucket, key string) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	return body, nil
}
