package main

import (
	"context"
	"strings"
	"testing"

	obsidian2html "github.com/alnah/go-obsidian2html"
)

// wrongTypeConverter satisfies Converter without being a
// *obsidian2html.Converter, which Release must reject.
type wrongTypeConverter struct{}

func (w *wrongTypeConverter) Convert(_ context.Context, _ obsidian2html.Input) (*obsidian2html.Result, error) {
	return &obsidian2html.Result{HTML: []byte("<p>mock</p>")}, nil
}

func TestPoolAdapter_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := obsidian2html.NewConverterPool(1)
	defer pool.Close()

	adapter := &poolAdapter{pool: pool}

	svc, err := adapter.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if svc == nil {
		t.Fatal("Acquire() returned nil")
	}

	adapter.Release(svc)

	// The released converter comes back on the next acquire.
	again, err := adapter.Acquire()
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if again != svc {
		t.Error("released converter should be reused")
	}
	adapter.Release(again)
}

func TestPoolAdapter_Size(t *testing.T) {
	t.Parallel()

	pool := obsidian2html.NewConverterPool(3)
	defer pool.Close()

	adapter := &poolAdapter{pool: pool}

	if adapter.Size() != 3 {
		t.Errorf("Size() = %d, want 3", adapter.Size())
	}
}

func TestPoolAdapter_AcquireError(t *testing.T) {
	t.Parallel()

	pool := obsidian2html.NewConverterPool(1, obsidian2html.WithStyle("no-such-style"))
	defer pool.Close()

	adapter := &poolAdapter{pool: pool}

	if _, err := adapter.Acquire(); err == nil {
		t.Fatal("Acquire() should surface the construction error")
	}
}

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	pool := obsidian2html.NewConverterPool(1)
	defer pool.Close()

	adapter := &poolAdapter{pool: pool}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic message should contain 'unexpected type', got %q", msg)
		}
	}()

	adapter.Release(&wrongTypeConverter{})
}
