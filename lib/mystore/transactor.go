package mystore

import (
	"context"
	"sync"
)

type participant interface {
	// snapshot captures the current state and returns a func that restores it
	snapshot() func()
}

// Transactor serializes all access to the stores that joined it.
type Transactor struct {
	sync.Mutex
	members []participant
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) join(p participant) {
	t.Lock()
	defer t.Unlock()

	t.members = append(t.members, p)
}

func (t *Transactor) inTransaction(c context.Context) bool {
	owner, ok := c.Value(ctxTransactionKey{}).(*Transactor)
	return ok && owner == t
}

// RunInTransaction runs f while holding the lock. When f returns an error every member store
// is restored to the state it had when the transaction started. Nested calls with a
// transactional context join the outer transaction.
func (t *Transactor) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if t.inTransaction(c) {
		return f(c)
	}

	// Start transaction
	t.Lock()
	defer t.Unlock()

	restorers := make([]func(), 0, len(t.members))
	for _, m := range t.members {
		restorers = append(restorers, m.snapshot())
	}

	err := f(context.WithValue(c, ctxTransactionKey{}, t))
	if err != nil {
		// Rollback
		for _, restore := range restorers {
			restore()
		}
		return err
	}

	// Commit
	return nil
}

// lockUnlessInTransaction takes the lock for a single non-transactional operation and
// returns the matching unlock.
func (t *Transactor) lockUnlessInTransaction(c context.Context) func() {
	if t.inTransaction(c) {
		return func() {}
	}
	t.Lock()
	return t.Unlock
}
