package retriever

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeKnowledgeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadKnowledgeBase(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})
	dir := t.TempDir()
	writeKnowledgeFile(t, dir, "olive_oil.txt", "Olive Oil: 3.5L, Pantry Shelf A")
	writeKnowledgeFile(t, dir, "flour.txt", "Flour: 25kg, Dry Storage")
	writeKnowledgeFile(t, dir, "notes.md", "not inventory, wrong extension")

	if err := s.LoadKnowledgeBase(context.Background(), dir); err != nil {
		t.Fatalf("LoadKnowledgeBase: %v", err)
	}

	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2 (.md file must be skipped)", n)
	}
}

func TestLoadKnowledgeBaseIdempotent(t *testing.T) {
	emb := &stubEmbedder{}
	s := newTestStore(t, emb)
	dir := t.TempDir()
	writeKnowledgeFile(t, dir, "olive_oil.txt", "Olive Oil: 3.5L")
	ctx := context.Background()

	if err := s.LoadKnowledgeBase(ctx, dir); err != nil {
		t.Fatalf("first load: %v", err)
	}
	embedCallsAfterFirst := emb.calls

	// Add another file; a second load must skip it entirely because the
	// store is already populated.
	writeKnowledgeFile(t, dir, "flour.txt", "Flour: 25kg")
	if err := s.LoadKnowledgeBase(ctx, dir); err != nil {
		t.Fatalf("second load: %v", err)
	}

	if emb.calls != embedCallsAfterFirst {
		t.Errorf("second load called the embedder %d more times, want 0",
			emb.calls-embedCallsAfterFirst)
	}
	n, _ := s.Count(ctx)
	if n != 1 {
		t.Errorf("Count = %d, want 1 (second load must be skipped)", n)
	}
}

func TestLoadKnowledgeBaseMissingDir(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})

	err := s.LoadKnowledgeBase(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing knowledge directory")
	}
}

func TestLoadKnowledgeBaseEmptyDir(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})

	if err := s.LoadKnowledgeBase(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("empty dir must not be an error, got %v", err)
	}
	n, _ := s.Count(context.Background())
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}
