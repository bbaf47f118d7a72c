package domain

// Sentinels used when the account directory cannot resolve an account or
// its owning team. Lookups degrade to these rather than failing a run.
const (
	UnknownAccountName = "account not found"
	UnknownTeamHandle  = "owning-team-not-found"
)

// Account identifies one audited cloud account. Name and SlackHandle are
// resolved lazily from the account directory and may hold the sentinel
// values above. Equality is by identifier and name.
type Account struct {
	Identifier  string
	Name        string
	SlackHandle string
}

func NewAccount(identifier, name string) Account {
	return Account{Identifier: identifier, Name: name}
}
