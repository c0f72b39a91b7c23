package mystore

import (
	"context"
)

type ctxTransactionKey struct{}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	// List returns all values in the order their uid was first stored
	List(c context.Context) ([]T, error)
}

// New creates a store that joins the given transactor. Stores sharing a transactor are
// mutated through a single serialized path: a transaction on one of them covers all of them.
// A nil transactor gives the store a private one.
func New[T any](c context.Context, tx *Transactor) (Store[T], func(), error) {
	return NewInMemoryStore[T](c, tx)
}
