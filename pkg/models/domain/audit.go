package domain

import "encoding/json"

// Audit is one fetched report payload plus the type tag identifying its
// schema. The report is an ordered sequence of per-subject result blocks,
// typically one per account/region pair, left as raw JSON for the
// selected analyser to decode. Immutable once fetched.
type Audit struct {
	Type   string
	Report []json.RawMessage
}
