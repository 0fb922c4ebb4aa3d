// Package view holds the state of a list page across a mutation: the rows
// shown and the error banner above them.
package view

import "context"

// List is the state of a list page.
type List[T any] struct {
	Rows  []T
	Error error
}

// Load fetches the rows. A failed load leaves no rows and the error.
func Load[T any](ctx context.Context, fetch func(context.Context) ([]T, error)) List[T] {
	rows, err := fetch(ctx)
	if err != nil {
		return List[T]{Error: err}
	}
	return List[T]{Rows: rows}
}

// Mutate applies a change and refreshes the list. On failure the prior rows
// stay and the error is set. On success the rows are fetched exactly once;
// a failed refetch keeps the prior rows with the refetch error.
func (l List[T]) Mutate(ctx context.Context, mutate func(context.Context) error, fetch func(context.Context) ([]T, error)) List[T] {
	if err := mutate(ctx); err != nil {
		return List[T]{Rows: l.Rows, Error: err}
	}
	rows, err := fetch(ctx)
	if err != nil {
		return List[T]{Rows: l.Rows, Error: err}
	}
	return List[T]{Rows: rows}
}
