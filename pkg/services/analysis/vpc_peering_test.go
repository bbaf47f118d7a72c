package analysis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

func TestVpcPeeringAnalyser_ZeroOneOrTwoViolations(t *testing.T) {
	audit := domain.Audit{
		Type: TypeVpcPeering,
		Report: []json.RawMessage{
			[]byte(`{
				"account": {"identifier": "111122223333", "name": "dev"},
				"region": "eu-west-2",
				"results": {"vpc_peering_connections": [
					{
						"id": "pcx-clean",
						"requester": {"identifier": "111122223333", "name": "dev"},
						"accepter": {"identifier": "444455556666", "name": "prod"}
					},
					{
						"id": "pcx-one",
						"requester": {"identifier": "999988887777", "name": "unknown"},
						"accepter": {"identifier": "444455556666", "name": "prod"}
					},
					{
						"id": "pcx-two",
						"requester": {"identifier": "999988887777", "name": "unknown"},
						"accepter": {"identifier": "121212121212", "name": "unknown"}
					}
				]}
			}`),
		},
	}

	findings, err := NewVpcPeeringAnalyser().Analyse(context.Background(), audit)

	require.NoError(t, err)
	require.Len(t, findings, 3)

	assert.Equal(t, "pcx-clean", findings[0].Item)
	assert.Empty(t, findings[0].Findings)

	assert.Equal(t, "pcx-one", findings[1].Item)
	assert.Equal(t, []string{"requester account 999988887777 is unknown"}, findings[1].Findings)

	assert.Equal(t, "pcx-two", findings[2].Item)
	assert.Equal(t, []string{
		"accepter account 121212121212 is unknown",
		"requester account 999988887777 is unknown",
	}, findings[2].Findings)
}

func TestSsmAnalyser_FlagsNonCompliantDocuments(t *testing.T) {
	audit := domain.Audit{
		Type: TypeSsmDocument,
		Report: []json.RawMessage{
			[]byte(`{
				"account": {"identifier": "111122223333", "name": "dev"},
				"region": "eu-west-2",
				"results": {"documents": [
					{"name": "session-manager-settings", "compliant": true},
					{"name": "run-patch-baseline", "compliant": false}
				]}
			}`),
		},
	}

	findings, err := NewSsmAnalyser().Analyse(context.Background(), audit)

	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Empty(t, findings[0].Findings)
	assert.Equal(t, "run-patch-baseline", findings[1].Item)
	assert.Equal(t, []string{"SSM document compliance check failed: compliant is false"}, findings[1].Findings)
}
