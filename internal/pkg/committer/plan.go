// Package committer collects Spanner mutations into a plan and applies them
// in one transaction.
//
// Repositories build mutations without applying them; callers gather them in
// a CommitPlan and hand it to a Committer:
//
//	plan := committer.NewPlan()
//	plan.Add(model.UpdateMut(data))
//	return c.ApplyWithVersionCheck(ctx, committer.VersionCheck{
//	    Table:    m_cart.TableName,
//	    Key:      spanner.Key{storageKey},
//	    Column:   m_cart.Version,
//	    Expected: loadedVersion,
//	}, plan)
//
// ApplyWithVersionCheck gives optimistic locking: the plan is written only if
// the row's version column still holds the value seen at load time.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// ErrVersionConflict is returned when the stored version moved since load.
var ErrVersionConflict = errors.New("optimistic lock conflict")

// CommitPlan is an ordered batch of mutations applied in one commit.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends mut. A nil mutation is skipped.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionCheck names the row and version column guarding a plan.
// Expected zero means the row must not exist yet.
type VersionCheck struct {
	Table    string
	Key      spanner.Key
	Column   string
	Expected int64
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck executes the plan only if check.Column still equals
// check.Expected. It returns an error wrapping ErrVersionConflict otherwise.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		current, err := readVersion(ctx, txn, check)
		if err != nil {
			return err
		}

		if current != check.Expected {
			return fmt.Errorf("%w: %s expected %d, got %d", ErrVersionConflict, check.Table, check.Expected, current)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}

// readVersion returns zero for a missing row.
func readVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, check VersionCheck) (int64, error) {
	row, err := txn.ReadRow(ctx, check.Table, check.Key, []string{check.Column})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s version: %w", check.Table, err)
	}

	var version int64
	if err := row.Column(0, &version); err != nil {
		return 0, fmt.Errorf("failed to parse version: %w", err)
	}
	return version, nil
}
