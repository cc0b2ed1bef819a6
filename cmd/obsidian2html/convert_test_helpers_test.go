package main

// Shared test infrastructure for the convert command tests.

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	obsidian2html "github.com/alnah/go-obsidian2html"
)

// mockConverter records Convert calls and returns canned results.
// Safe for concurrent use by convertBatch workers.
type mockConverter struct {
	mu          sync.Mutex
	calls       []obsidian2html.Input
	convertFunc func(ctx context.Context, input obsidian2html.Input) (*obsidian2html.Result, error)
}

func (m *mockConverter) Convert(ctx context.Context, input obsidian2html.Input) (*obsidian2html.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if m.convertFunc != nil {
		return m.convertFunc(ctx, input)
	}
	return &obsidian2html.Result{HTML: []byte("<p>mock</p>")}, nil
}

func (m *mockConverter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// testPool is a Pool backed by a prefilled channel of converters.
type testPool struct {
	sem        chan Converter
	acquireErr error
}

func newTestPool(converters ...Converter) *testPool {
	sem := make(chan Converter, len(converters))
	for _, c := range converters {
		sem <- c
	}
	return &testPool{sem: sem}
}

func (p *testPool) Acquire() (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return <-p.sem, nil
}

func (p *testPool) Release(c Converter) { p.sem <- c }

func (p *testPool) Size() int { return cap(p.sem) }

// setupTestDir creates files under a temp dir, keyed by relative path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for relPath, content := range files {
		path := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("creating dir for %s: %v", relPath, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}
	return dir
}
