package mystore

import (
	"context"
)

type InMemoryStore[T any] struct {
	tx    *Transactor
	items map[string]T
	order []string
}

func NewInMemoryStore[T any](c context.Context, tx *Transactor) (*InMemoryStore[T], func(), error) {
	if tx == nil {
		tx = NewTransactor()
	}
	s := &InMemoryStore[T]{
		tx:    tx,
		items: make(map[string]T),
		order: []string{},
	}
	tx.join(s)

	return s, func() {}, nil
}

func (s *InMemoryStore[T]) snapshot() func() {
	items := make(map[string]T, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	order := make([]string, len(s.order))
	copy(order, s.order)

	return func() {
		s.items = items
		s.order = order
	}
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return s.tx.RunInTransaction(c, f)
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	unlock := s.tx.lockUnlessInTransaction(c)
	defer unlock()

	if _, exists := s.items[uid]; !exists {
		s.order = append(s.order, uid)
	}
	s.items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	unlock := s.tx.lockUnlessInTransaction(c)
	defer unlock()

	result, exists := s.items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) error {
	unlock := s.tx.lockUnlessInTransaction(c)
	defer unlock()

	if _, exists := s.items[uid]; !exists {
		return nil
	}
	delete(s.items, uid)

	order := make([]string, 0, len(s.order))
	for _, u := range s.order {
		if u != uid {
			order = append(order, u)
		}
	}
	s.order = order

	return nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	unlock := s.tx.lockUnlessInTransaction(c)
	defer unlock()

	result := make([]T, 0, len(s.items))
	for _, uid := range s.order {
		result = append(result, s.items[uid])
	}

	return result, nil
}
