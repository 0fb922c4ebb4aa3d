package view

import (
	"context"
	"errors"
	"testing"
)

func TestMutateKeepsRowsOnFailure(t *testing.T) {
	ctx := context.Background()
	fetches := 0
	fetch := func(context.Context) ([]string, error) {
		fetches++
		return []string{"a", "b"}, nil
	}

	l := Load(ctx, fetch)
	if len(l.Rows) != 2 || fetches != 1 {
		t.Fatalf("unexpected initial state %+v after %d fetches", l, fetches)
	}

	errFail := errors.New("backend said no")
	l = l.Mutate(ctx, func(context.Context) error { return errFail }, fetch)
	if !errors.Is(l.Error, errFail) {
		t.Errorf("expected mutation error, got %v", l.Error)
	}
	if len(l.Rows) != 2 {
		t.Errorf("prior rows should be kept, got %v", l.Rows)
	}
	if fetches != 1 {
		t.Errorf("failed mutation must not refetch, fetched %d times", fetches)
	}
}

func TestMutateRefetchesOnce(t *testing.T) {
	ctx := context.Background()
	rows := []string{"a"}
	fetches := 0
	fetch := func(context.Context) ([]string, error) {
		fetches++
		return rows, nil
	}

	l := Load(ctx, fetch)
	l = l.Mutate(ctx, func(context.Context) error {
		rows = append(rows, "b")
		return nil
	}, fetch)

	if fetches != 2 {
		t.Errorf("expected exactly one refetch, got %d fetches", fetches)
	}
	if l.Error != nil || len(l.Rows) != 2 {
		t.Errorf("unexpected state %+v", l)
	}
}

func TestLoadError(t *testing.T) {
	errFail := errors.New("down")
	l := Load(context.Background(), func(context.Context) ([]int, error) { return nil, errFail })
	if !errors.Is(l.Error, errFail) || l.Rows != nil {
		t.Errorf("unexpected state %+v", l)
	}
}
