package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/models/domain"
)

const (
	itemTypeVpcPeering = "vpc_peering"

	// unknownPeerName is the sentinel the scanner writes when it cannot
	// resolve a peering party's account.
	unknownPeerName = "unknown"
)

type vpcPeeringResults struct {
	Connections []vpcPeeringConnection `json:"vpc_peering_connections"`
}

type vpcPeeringConnection struct {
	ID        string      `json:"id"`
	Requester peerAccount `json:"requester"`
	Accepter  peerAccount `json:"accepter"`
}

type peerAccount struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// VpcPeeringAnalyser flags peering connections whose requester or
// accepter account could not be resolved; a connection can yield zero,
// one, or two violations.
type VpcPeeringAnalyser struct{}

func NewVpcPeeringAnalyser() *VpcPeeringAnalyser {
	return &VpcPeeringAnalyser{}
}

func (a *VpcPeeringAnalyser) Analyse(_ context.Context, audit domain.Audit) ([]domain.Finding, error) {
	var findings []domain.Finding
	for _, raw := range audit.Report {
		block, err := decodeBlock(raw, audit.Type)
		if err != nil {
			return nil, err
		}

		var results vpcPeeringResults
		if err := json.Unmarshal(block.Results, &results); err != nil {
			return nil, fmt.Errorf("failed to decode %s results: %w", audit.Type, err)
		}

		for _, conn := range results.Connections {
			finding := domain.NewFinding(itemTypeVpcPeering, conn.ID, checkConnection(conn)).
				WithAccount(block.Account.toDomain()).
				WithRegion(block.Region)
			findings = append(findings, finding)
		}
	}
	return findings, nil
}

func checkConnection(conn vpcPeeringConnection) []string {
	var violations []string
	if conn.Requester.Name == unknownPeerName {
		violations = append(violations, fmt.Sprintf("requester account %s is unknown", conn.Requester.Identifier))
	}
	if conn.Accepter.Name == unknownPeerName {
		violations = append(violations, fmt.Sprintf("accepter account %s is unknown", conn.Accepter.Identifier))
	}
	return violations
}
