package account

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/rs/zerolog"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const defaultTeamTagKey = "team"

// OrganizationsAPI is the slice of the Organizations client this
// package uses.
type OrganizationsAPI interface {
	DescribeAccount(ctx context.Context, params *organizations.DescribeAccountInput, optFns ...func(*organizations.Options)) (*organizations.DescribeAccountOutput, error)
	ListTagsForResource(ctx context.Context, params *organizations.ListTagsForResourceInput, optFns ...func(*organizations.Options)) (*organizations.ListTagsForResourceOutput, error)
}

// Resolver looks up account name and owning-team handle in the account
// directory. Lookup failures degrade to sentinel values and are logged;
// a missing directory entry never fails a run.
type Resolver struct {
	client     OrganizationsAPI
	teamTagKey string
}

func NewResolver(client OrganizationsAPI) *Resolver {
	return &Resolver{client: client, teamTagKey: defaultTeamTagKey}
}

func (r *Resolver) Resolve(ctx context.Context, identifier string) (domain.Account, error) {
	logger := zerolog.Ctx(ctx)

	described, err := r.client.DescribeAccount(ctx, &organizations.DescribeAccountInput{
		AccountId: aws.String(identifier),
	})
	if err != nil {
		logger.Warn().Err(err).Str("account", identifier).Msg("failed to describe account")
		return domain.Account{
			Identifier:  identifier,
			Name:        domain.UnknownAccountName,
			SlackHandle: domain.UnknownTeamHandle,
		}, nil
	}

	account := domain.Account{
		Identifier:  identifier,
		Name:        aws.ToString(described.Account.Name),
		SlackHandle: domain.UnknownTeamHandle,
	}

	tags, err := r.client.ListTagsForResource(ctx, &organizations.ListTagsForResourceInput{
		ResourceId: aws.String(identifier),
	})
	if err != nil {
		logger.Warn().Err(err).Str("account", identifier).Msg("failed to list account tags")
		return account, nil
	}

	for _, tag := range tags.Tags {
		if aws.ToString(tag.Key) == r.teamTagKey {
			account.SlackHandle = aws.ToString(tag.Value)
			break
		}
	}
	return account, nil
}

