package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const (
	filtersPrefix  = "filters/"
	mappingsPrefix = "mappings/"
)

// ConfigStore reads notification filter and mapping records from the
// two config namespaces of a bucket. One unreadable or malformed object
// is logged and excluded; it never aborts loading the rest.
type ConfigStore struct {
	client ObjectsAPI
	bucket string
}

func NewConfigStore(client ObjectsAPI, bucket string) *ConfigStore {
	return &ConfigStore{client: client, bucket: bucket}
}

func (s *ConfigStore) Filters(ctx context.Context) ([]domain.FilterConfig, error) {
	var filters []domain.FilterConfig
	err := s.eachObject(ctx, filtersPrefix, func(key string, body []byte) {
		var records []domain.FilterConfig
		if err := json.Unmarshal(body, &records); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("key", key).Msg("skipping malformed filter config")
			return
		}
		filters = append(filters, records...)
	})
	return filters, err
}

func (s *ConfigStore) Mappings(ctx context.Context) ([]domain.MappingConfig, error) {
	var mappings []domain.MappingConfig
	err := s.eachObject(ctx, mappingsPrefix, func(key string, body []byte) {
		var records []domain.MappingConfig
		if err := json.Unmarshal(body, &records); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("key", key).Msg("skipping malformed mapping config")
			return
		}
		mappings = append(mappings, records...)
	})
	return mappings, err
}

// eachObject lists a namespace and feeds every readable object to fn.
// Listing failures abort; per-object fetch failures are logged only.
func (s *ConfigStore) eachObject(ctx context.Context, prefix string, fn func(key string, body []byte)) error {
	logger := zerolog.Ctx(ctx)

	var continuationToken *string
	for {
		output, err := s.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, prefix, err)
		}

		for _, object := range output.Contents {
			key := aws.ToString(object.Key)
			body, err := s.fetchConfigObject(ctx, key)
			if err != nil {
				logger.Error().Err(err).Str("key", key).Msg("skipping unreadable config object")
				continue
			}
			fn(key, body)
		}

		if output.IsTruncated == nil || !*output.IsTruncated {
			return nil
		}
		continuationToken = output.NextContinuationToken
	}
}

func (s *ConfigStore) fetchConfigObject(ctx context.Context, key string) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", s.bucket, key, err)
	}
	defer output.Body.Close()
	return io.ReadAll(output.Body)
}
