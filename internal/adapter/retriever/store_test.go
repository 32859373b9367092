package retriever

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"pantry-ai/internal/domain"
)

// stubEmbedder maps each input text to a fixed vector. Unknown texts embed
// to a zero-free default so cosine similarity stays well defined.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (e *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := e.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float32{1, 1, 1}
		}
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int { return 3 }
func (e *stubEmbedder) Name() string    { return "stub" }

func newTestStore(t *testing.T, embedder domain.EmbeddingProvider) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"), embedder, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndAll(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})
	ctx := context.Background()

	docs := []string{"Olive Oil: 3.5L", "Flour: 25kg", "Tomatoes: 10kg"}
	for i, content := range docs {
		err := s.Add(ctx, Document{ID: string(rune('a' + i)), Content: content})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	got, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != len(docs) {
		t.Fatalf("got %d documents, want %d", len(got), len(docs))
	}
	for i, want := range docs {
		if got[i] != want {
			t.Errorf("All()[%d] = %q, want %q (insertion order)", i, got[i], want)
		}
	}
}

func TestAllEmptyStore(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})

	got, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d documents from empty store", len(got))
	}
}

func TestAddBatchAndCount(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})
	ctx := context.Background()

	stored, err := s.AddBatch(ctx, []Document{
		{ID: "olive_oil.txt", Content: "Olive Oil: 3.5L"},
		{ID: "flour.txt", Content: "Flour: 25kg"},
	})
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	if stored != 2 {
		t.Errorf("stored = %d, want 2", stored)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestAddBatchUpsertsByID(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})
	ctx := context.Background()

	for _, content := range []string{"Flour: 25kg", "Flour: 20kg"} {
		if _, err := s.AddBatch(ctx, []Document{{ID: "flour.txt", Content: content}}); err != nil {
			t.Fatalf("AddBatch: %v", err)
		}
	}

	n, _ := s.Count(ctx)
	if n != 1 {
		t.Fatalf("Count = %d, want 1 after upsert", n)
	}
	all, _ := s.All(ctx)
	if all[0] != "Flour: 20kg" {
		t.Errorf("content = %q, want updated content", all[0])
	}
}

func TestAddBatchEmbeddingFailure(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{err: errors.New("embedder down")})

	_, err := s.AddBatch(context.Background(), []Document{{ID: "x", Content: "y"}})
	if !errors.Is(err, domain.ErrEmbeddingFailed) {
		t.Fatalf("err = %v, want ErrEmbeddingFailed", err)
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"Olive Oil: 3.5L": {1, 0, 0},
		"Flour: 25kg":     {0, 1, 0},
		"Tomatoes: 10kg":  {0, 0, 1},
		"oil":             {0.9, 0.1, 0},
	}}
	s := newTestStore(t, emb)
	ctx := context.Background()

	_, err := s.AddBatch(ctx, []Document{
		{ID: "a", Content: "Olive Oil: 3.5L"},
		{ID: "b", Content: "Flour: 25kg"},
		{ID: "c", Content: "Tomatoes: 10kg"},
	})
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}

	got, err := s.Search(ctx, "oil", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0] != "Olive Oil: 3.5L" {
		t.Errorf("best match = %q, want olive oil document", got[0])
	}
}

func TestSearchEmbeddingFailureReturnsEmpty(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{}}
	s := newTestStore(t, emb)
	ctx := context.Background()

	if _, err := s.AddBatch(ctx, []Document{{ID: "a", Content: "Olive Oil: 3.5L"}}); err != nil {
		t.Fatalf("AddBatch: %v", err)
	}

	emb.err = errors.New("embedder down")
	got, err := s.Search(ctx, "oil", 2)
	if err != nil {
		t.Fatalf("Search must not fail on embedding error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestSearchEmptyStore(t *testing.T) {
	s := newTestStore(t, &stubEmbedder{})

	got, err := s.Search(context.Background(), "anything", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d results from empty store", len(got))
	}
}

func TestSearchIndexSurvivesReopen(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"Olive Oil: 3.5L": {1, 0, 0},
		"oil":             {1, 0, 0},
	}}
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s1, err := New(dbPath, emb, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s1.AddBatch(context.Background(), []Document{{ID: "a", Content: "Olive Oil: 3.5L"}}); err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	s1.Close()

	s2, err := New(dbPath, emb, logger)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Search(context.Background(), "oil", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0] != "Olive Oil: 3.5L" {
		t.Errorf("Search after reopen = %v, want persisted document", got)
	}
}

func TestFloat32BytesRoundTrip(t *testing.T) {
	in := []float32{0.5, -1.25, 3.0, 0}

	out := bytesToFloat32(float32ToBytes(in))

	if len(out) != len(in) {
		t.Fatalf("length %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestBytesToFloat32Invalid(t *testing.T) {
	if got := bytesToFloat32([]byte{1, 2, 3}); got != nil {
		t.Errorf("truncated blob should decode to nil, got %v", got)
	}
	if got := bytesToFloat32(nil); got != nil {
		t.Errorf("nil blob should decode to nil, got %v", got)
	}
}
