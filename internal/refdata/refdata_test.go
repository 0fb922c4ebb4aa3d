package refdata

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoadAll(t *testing.T) {
	var names []string
	var count int

	var l Loader
	Add(&l, &names, func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	Add(&l, &count, func(ctx context.Context) (int, error) {
		return 7, nil
	})

	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(names) != 2 || count != 7 {
		t.Errorf("unexpected results: %v %d", names, count)
	}
}

func TestLoadFirstErrorCancels(t *testing.T) {
	errBoom := errors.New("boom")
	cancelled := make(chan struct{})

	var a, b int
	var l Loader
	Add(&l, &a, func(ctx context.Context) (int, error) {
		return 0, errBoom
	})
	Add(&l, &b, func(ctx context.Context) (int, error) {
		select {
		case <-ctx.Done():
			close(cancelled)
			return 0, ctx.Err()
		case <-time.After(5 * time.Second):
			return 1, nil
		}
	})

	err := l.Load(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	select {
	case <-cancelled:
	default:
		t.Error("slow fetch was not cancelled")
	}
}

func TestLoadEmpty(t *testing.T) {
	var l Loader
	if err := l.Load(context.Background()); err != nil {
		t.Errorf("empty loader: %v", err)
	}
}
