package match

import (
	"context"
	"fmt"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

// Hit is one ranked similarity result
type Hit struct {
	JobID      string
	Similarity float64
	Metadata   map[string]string
}

// Index wraps the embedded vector database. Collections are per session,
// mirroring the independence of session files: one session's job
// candidates never rank against another's.
type Index struct {
	db          *chromem.DB
	collections map[string]*chromem.Collection
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewIndex(logger *zap.Logger) *Index {
	return &Index{
		db:          chromem.NewDB(),
		collections: make(map[string]*chromem.Collection),
		logger:      logger,
	}
}

func (idx *Index) collection(sessionID string) (*chromem.Collection, error) {
	idx.mu.RLock()
	col, exists := idx.collections[sessionID]
	idx.mu.RUnlock()

	if exists {
		return col, nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if col, exists := idx.collections[sessionID]; exists {
		return col, nil
	}

	col, err := idx.db.CreateCollection(
		collectionName(sessionID),
		nil, // embeddings are provided, no embedding func
		nil, // default cosine distance
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	idx.collections[sessionID] = col
	return col, nil
}

// Upsert stores a document with its embedding; same ID overwrites
func (idx *Index) Upsert(ctx context.Context, sessionID, docID, text string, embedding []float32, metadata map[string]string) error {
	col, err := idx.collection(sessionID)
	if err != nil {
		return err
	}

	doc := chromem.Document{
		ID:        docID,
		Content:   text,
		Embedding: embedding,
		Metadata:  metadata,
	}

	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	idx.logger.Debug("Indexed document",
		zap.String("session", sessionID),
		zap.String("doc", docID),
	)
	return nil
}

// Similarity ranks indexed documents against the query embedding. An
// empty collection yields an empty result, never an error.
func (idx *Index) Similarity(ctx context.Context, sessionID string, embedding []float32, k int) ([]Hit, error) {
	col, err := idx.collection(sessionID)
	if err != nil {
		return nil, err
	}

	if k < 1 {
		k = 1
	}

	// chromem requires nResults <= collection size, walk the limit down
	var results []chromem.Result
	for limit := k; limit >= 1; limit-- {
		results, err = col.QueryEmbedding(ctx, embedding, limit, nil, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			if limit == 1 {
				return nil, nil
			}
			continue
		}
		return nil, fmt.Errorf("similarity query: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, result := range results {
		hits = append(hits, Hit{
			JobID:      result.ID,
			Similarity: float64(result.Similarity),
			Metadata:   result.Metadata,
		})
	}

	return hits, nil
}

// DropSession discards a session's collection, freeing its documents
func (idx *Index) DropSession(sessionID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.collections[sessionID]; !exists {
		return
	}

	delete(idx.collections, sessionID)
	if err := idx.db.DeleteCollection(collectionName(sessionID)); err != nil {
		idx.logger.Warn("Failed to delete collection",
			zap.String("session", sessionID),
			zap.Error(err),
		)
	}
}

func collectionName(sessionID string) string {
	return "session_" + sessionID
}

func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
