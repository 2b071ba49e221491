package reconcile

import "context"

// Adapter defines the model-specific parts of a reconciliation.
type Adapter[C, E any] interface {
	// Name identifies the adapter in errors and logs (e.g. "student").
	Name() string

	// CandidateKey returns the identity of a candidate, or "" if it has none.
	CandidateKey(c C) string

	// ExistingKey returns the identity of a stored row.
	ExistingKey(e E) string

	// LoadExisting fetches the stored rows whose key is in keys, in a single query.
	LoadExisting(ctx context.Context, keys []string) ([]E, error)

	// Prepare returns the candidate as it should be inserted.
	Prepare(c C) C
}

// Plan is the outcome of reconciling a batch.
type Plan[C, E any] struct {
	// Existing holds the stored rows matching a candidate key.
	Existing []E `json:"existing"`

	// New holds prepared candidates whose key is not stored yet.
	New []C `json:"new"`

	// Invalid holds candidates without a key.
	Invalid []C `json:"invalid,omitempty"`

	// Duplicates holds keys repeated inside the batch.
	Duplicates []string `json:"duplicates,omitempty"`
}

// Summary provides aggregate counts of a plan.
type Summary struct {
	Existing   int `json:"existing"`
	New        int `json:"new"`
	Invalid    int `json:"invalid"`
	Duplicates int `json:"duplicates"`
}

// Summary returns the plan's counts.
func (p *Plan[C, E]) Summary() Summary {
	return Summary{
		Existing:   len(p.Existing),
		New:        len(p.New),
		Invalid:    len(p.Invalid),
		Duplicates: len(p.Duplicates),
	}
}
