package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRun(t *testing.T) {
	var called int32
	errs := Run(context.Background(), 3, 2, func(ctx context.Context, i int) error {
		atomic.AddInt32(&called, 1)
		if i == 1 {
			return errors.New("test error")
		}
		return nil
	})

	if called != 3 {
		t.Fatalf("expected 3 calls, got %d", called)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestRunWritesByIndex(t *testing.T) {
	out := make([]int, 50)
	errs := Run(context.Background(), len(out), 0, func(ctx context.Context, i int) error {
		out[i] = i * i
		return nil
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for i, v := range out {
		if v != i*i {
			t.Fatalf("slot %d = %d", i, v)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := Run(ctx, 100, 1, func(ctx context.Context, i int) error { return nil })
	found := false
	for _, err := range errs {
		if errors.Is(err, context.Canceled) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected context.Canceled, got %v", errs)
	}
}

func TestRunEmpty(t *testing.T) {
	if errs := Run(context.Background(), 0, 4, func(context.Context, int) error { return nil }); errs != nil {
		t.Fatalf("expected nil, got %v", errs)
	}
}
