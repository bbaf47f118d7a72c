package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Settings controls how the shared AWS client configuration is built.
// When RoleArn is set, all calls are made under the assumed role.
type Settings struct {
	Region  string
	RoleArn string
}

// NewConfig loads the default AWS configuration and, when configured,
// layers role assumption on top of it.
func NewConfig(ctx context.Context, settings Settings) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(settings.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if settings.RoleArn != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), settings.RoleArn)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}
	return cfg, nil
}
