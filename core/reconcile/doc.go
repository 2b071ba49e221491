// Package reconcile splits a batch of candidate rows into the ones that already
// exist in the database and the ones that still need to be inserted.
//
// # Architecture
//
// The engine is generic over two row types: the candidate shape (what a client
// submitted) and the existing shape (what the database returned). An Adapter
// supplies the model-specific parts:
//
//   - CandidateKey / ExistingKey: extract the identity used to match rows.
//   - LoadExisting: one batched lookup for all candidate keys.
//   - Prepare: stamps defaults on candidates that will be inserted.
//
// # Guarantees
//
// Keyed candidates end up in exactly one of Existing or New, so the union of both
// (by key) equals the submitted set and the two are disjoint. Candidates without a
// key are reported as Invalid. A key repeated inside the batch is inserted once;
// later copies are listed in Duplicates.
//
// Reconcile never writes; callers insert Plan.New themselves, usually in a
// transaction.
//
// # Usage
//
//	plan, err := reconcile.Reconcile(ctx, adapter, candidates)
//	if err != nil {
//	    return err
//	}
//	db.Transaction(func(tx *gorm.DB) error { return insert(tx, plan.New) })
package reconcile
