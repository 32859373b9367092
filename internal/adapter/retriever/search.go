package retriever

import (
	"context"
	"encoding/binary"
	"math"
	"sort"
	"sync"
	"time"
)

// Search implements domain.Retriever. The query is embedded and ranked by
// cosine similarity against all stored vectors. An embedding failure yields
// an empty result rather than an error: retrieval degrades to "nothing
// found" when the embedding service is down.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]string, error) {
	if s.embedder == nil || query == "" || topK <= 0 {
		return nil, nil
	}

	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		s.logger.Warn("retriever: query embedding failed", "error", err)
		return nil, nil
	}
	if len(vecs) == 0 {
		return nil, nil
	}

	if !s.docIdx.isLoaded() {
		if err := s.docIdx.loadFromDB(ctx, s); err != nil {
			return nil, err
		}
	}

	return s.docIdx.search(vecs[0], topK), nil
}

// docIndex is an in-memory index of embedding vectors. Entries are loaded
// lazily on the first search and updated incrementally on writes.
type docIndex struct {
	mu      sync.RWMutex
	entries map[string]indexedDoc // keyed by document ID
	loaded  bool
}

type indexedDoc struct {
	doc       Document
	embedding []float32
}

func newDocIndex() *docIndex {
	return &docIndex{entries: make(map[string]indexedDoc)}
}

// search performs cosine similarity search against all cached embeddings
// and returns the topK document contents, best match first.
func (idx *docIndex) search(queryVec []float32, topK int) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) == 0 {
		return nil
	}

	type scored struct {
		doc   Document
		score float32
	}

	candidates := make([]scored, 0, len(idx.entries))
	for _, e := range idx.entries {
		sim := cosineSimilarity(queryVec, e.embedding)
		if sim <= 0 {
			continue
		}
		candidates = append(candidates, scored{doc: e.doc, score: sim})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := min(topK, len(candidates))
	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = candidates[i].doc.Content
	}
	return result
}

func (idx *docIndex) put(doc Document, embedding []float32) {
	if embedding == nil {
		return
	}
	idx.mu.Lock()
	idx.entries[doc.ID] = indexedDoc{doc: doc, embedding: embedding}
	idx.mu.Unlock()
}

func (idx *docIndex) isLoaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.loaded
}

// loadFromDB populates the index from the database. Called once on the
// first search; subsequent calls are no-ops.
func (idx *docIndex) loadFromDB(ctx context.Context, s *Store) error {
	idx.mu.Lock()
	if idx.loaded {
		idx.mu.Unlock()
		return nil
	}
	idx.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, content, source, embedding, created_at FROM documents WHERE embedding IS NOT NULL",
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	entries := make(map[string]indexedDoc)
	for rows.Next() {
		var (
			doc       Document
			embBlob   []byte
			createdAt string
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &doc.Source, &embBlob, &createdAt); err != nil {
			continue
		}

		emb := bytesToFloat32(embBlob)
		if emb == nil {
			continue
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			doc.CreatedAt = t
		}
		entries[doc.ID] = indexedDoc{doc: doc, embedding: emb}
	}

	idx.mu.Lock()
	idx.entries = entries
	idx.loaded = true
	idx.mu.Unlock()

	return rows.Err()
}

// cosineSimilarity computes dot(a,b) / (||a|| * ||b||).
// Returns 0 for zero-length vectors, length mismatch, or NaN/Inf results.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB)))
	if denom == 0 {
		return 0
	}
	result := dot / denom
	if math.IsNaN(float64(result)) || math.IsInf(float64(result), 0) {
		return 0
	}
	return result
}

// float32ToBytes converts a float32 slice to little-endian bytes.
func float32ToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32 converts little-endian bytes back to a float32 slice.
func bytesToFloat32(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
