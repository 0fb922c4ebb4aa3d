// Package refdata loads the reference collections a page needs in parallel.
// The page either gets all of them or a single error.
package refdata

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Loader collects fetches to run together.
type Loader struct {
	fetches []func(context.Context) error
}

// Add registers fetch to store its result in dst.
func Add[T any](l *Loader, dst *T, fetch func(context.Context) (T, error)) {
	l.fetches = append(l.fetches, func(ctx context.Context) error {
		v, err := fetch(ctx)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}

// Load runs every registered fetch concurrently. The first failure cancels
// the others and is returned; destinations of other fetches may then be
// partially filled and must be ignored.
func (l *Loader) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fetch := range l.fetches {
		g.Go(func() error { return fetch(ctx) })
	}
	return g.Wait()
}
