package retriever

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pantry-ai/internal/domain"
)

// LoadKnowledgeBase reads every .txt file under dir and stores each file as
// one document keyed by its file name. The load is idempotent in the
// simplest possible way: if the store already holds any documents, the load
// is skipped entirely. Changed source files are never re-ingested without
// deleting the data directory first.
//
// A missing directory is an error; the caller treats it as fatal at
// startup.
func (s *Store) LoadKnowledgeBase(ctx context.Context, dir string) error {
	count, err := s.Count(ctx)
	if err != nil {
		return domain.WrapOp("LoadKnowledgeBase", err)
	}
	if count > 0 {
		s.logger.Info("knowledge base already loaded, skipping",
			"documents", count, "db", s.dbPath)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read knowledge dir %s: %w", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read knowledge file %s: %w", entry.Name(), err)
		}
		docs = append(docs, Document{
			ID:      entry.Name(),
			Content: string(content),
			Source:  entry.Name(),
		})
	}

	if len(docs) == 0 {
		s.logger.Warn("knowledge dir contains no .txt files", "dir", dir)
		return nil
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	stored, err := s.AddBatch(ctx, docs)
	if err != nil {
		return domain.WrapOp("LoadKnowledgeBase", err)
	}

	s.logger.Info("knowledge base loaded", "documents", stored, "dir", dir)
	return nil
}
