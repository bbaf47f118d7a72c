package alerting

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/organizations"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/analysis"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/config"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/events"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/notification"
	accountstore "github.com/hmrc/platsec-compliance-alerting-sub000/pkg/store/account"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/store/awsclient"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/store/pagerduty"
	s3store "github.com/hmrc/platsec-compliance-alerting-sub000/pkg/store/s3"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/store/slack"
	ssmstore "github.com/hmrc/platsec-compliance-alerting-sub000/pkg/store/ssm"
)

// Bootstrap wires the stores, analysers, mappers, and notifiers into a
// ready-to-run orchestrator.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Orchestrator, error) {
	awsCfg, err := awsclient.NewConfig(ctx, awsclient.Settings{
		Region:  cfg.AWSRegion,
		RoleArn: cfg.AWSRoleArn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS clients: %w", err)
	}

	s3Client := awss3.NewFromConfig(awsCfg)
	resolver := accountstore.NewResolver(organizations.NewFromConfig(awsCfg))
	secrets := ssmstore.NewStore(awsssm.NewFromConfig(awsCfg))

	slackNotifier := NewSlackNotifier(
		notification.NewMapper(cfg.CentralChannel, resolver),
		slack.NewClient(cfg.SlackAPIURL, cfg.SlackAPIKey),
	)
	pagerNotifier := NewPagerDutyNotifier(
		notification.NewPagerMapper(cfg.ClientName, cfg.ClientURL, secrets),
		pagerduty.NewClient(cfg.PagerDutyAPIURL),
	)

	dispatcher := analysis.NewDefaultDispatcher(analysis.Settings{
		EnforceGithubWikiDisabled: cfg.EnforceGithubWikiDisabled,
		KnownWebhookHosts:         cfg.KnownWebhookHosts,
	})

	return NewOrchestrator(
		s3store.NewAuditStore(s3Client, cfg.ReportTypes),
		s3store.NewConfigStore(s3Client, cfg.ConfigBucket),
		dispatcher,
		events.NewDefaultRegistry(),
		slackNotifier,
		pagerNotifier,
	), nil
}
