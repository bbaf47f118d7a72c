package ssm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParametersAPI is the slice of the SSM client this package uses.
type ParametersAPI interface {
	GetParameter(ctx context.Context, params *awsssm.GetParameterInput, optFns ...func(*awsssm.Options)) (*awsssm.GetParameterOutput, error)
}

// Store resolves secrets held in parameter store.
type Store struct {
	client ParametersAPI
}

func NewStore(client ParametersAPI) *Store {
	return &Store{client: client}
}

// PagerDutyRoutingKey fetches the decrypted routing key for a service
// from the /pagerduty namespace.
func (s *Store) PagerDutyRoutingKey(ctx context.Context, service string) (string, error) {
	name := fmt.Sprintf("/pagerduty/%s", service)
	output, err := s.client.GetParameter(ctx, &awsssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch parameter %s: %w", name, err)
	}
	if output.Parameter == nil || output.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", name)
	}
	return *output.Parameter.Value, nil
}
