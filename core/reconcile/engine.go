package reconcile

import (
	"context"
	"fmt"
)

// Reconcile looks up which candidates already exist and prepares the rest for insertion.
func Reconcile[C, E any](ctx context.Context, adapter Adapter[C, E], candidates []C) (*Plan[C, E], error) {
	keys, invalid := collectKeys(adapter, candidates)

	var existing []E
	if len(keys) > 0 {
		rows, err := adapter.LoadExisting(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("reconcile %s: %w", adapter.Name(), err)
		}
		existing = rows
	}

	plan := Partition(adapter, candidates, existing)
	plan.Invalid = invalid
	return plan, nil
}

// Partition splits candidates against rows that are already known to exist.
// It performs no I/O.
func Partition[C, E any](adapter Adapter[C, E], candidates []C, existing []E) *Plan[C, E] {
	stored := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		stored[adapter.ExistingKey(e)] = struct{}{}
	}

	plan := &Plan[C, E]{
		Existing: make([]E, 0, len(existing)),
		New:      make([]C, 0, len(candidates)),
	}
	plan.Existing = append(plan.Existing, existing...)

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		key := adapter.CandidateKey(c)
		if key == "" {
			continue
		}
		if _, ok := stored[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			plan.Duplicates = append(plan.Duplicates, key)
			continue
		}
		seen[key] = struct{}{}
		plan.New = append(plan.New, adapter.Prepare(c))
	}

	return plan
}

// collectKeys returns the distinct candidate keys in input order and the keyless candidates.
func collectKeys[C, E any](adapter Adapter[C, E], candidates []C) ([]string, []C) {
	var (
		keys    []string
		invalid []C
		seen    = make(map[string]struct{}, len(candidates))
	)
	for _, c := range candidates {
		key := adapter.CandidateKey(c)
		if key == "" {
			invalid = append(invalid, c)
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, invalid
}
