package analysis

// Report type tags as they appear on fetched audits.
const (
	TypeS3             = "audit_s3"
	TypeGithub         = "audit_github"
	TypeGithubWebhook  = "audit_github_webhook"
	TypeIam            = "audit_iam"
	TypeVpcFlowLogs    = "audit_vpc_flow_logs"
	TypeVpcPeering     = "audit_vpc_peering"
	TypeSsmDocument    = "audit_ssm"
	TypePasswordPolicy = "audit_password_policy"
)

// Settings carries the per-deployment switches the analysers need.
type Settings struct {
	// EnforceGithubWikiDisabled turns on the repository wiki check.
	EnforceGithubWikiDisabled bool
	// KnownWebhookHosts lists webhook hostnames that are not reported
	// as unknown.
	KnownWebhookHosts []string
}

// NewDefaultDispatcher wires every supported report type to its
// analyser. The mapping is the single place a new report type is
// registered.
func NewDefaultDispatcher(settings Settings) *Dispatcher {
	return NewDispatcher(map[string]Analyser{
		TypeS3:             NewS3Analyser(),
		TypeGithub:         NewGithubAnalyser(settings.EnforceGithubWikiDisabled),
		TypeGithubWebhook:  NewGithubWebhookAnalyser(settings.KnownWebhookHosts),
		TypeIam:            NewIamAnalyser(),
		TypeVpcFlowLogs:    NewActionsAnalyser("vpc", "VPC flow logs"),
		TypeVpcPeering:     NewVpcPeeringAnalyser(),
		TypeSsmDocument:    NewSsmAnalyser(),
		TypePasswordPolicy: NewActionsAnalyser("password_policy", "password policy"),
	})
}
