package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudservices/kbot/cache"
	"github.com/cloudservices/kbot/storage"
	"github.com/cloudservices/kbot/types"
)

// KnowledgeService assembles the knowledge blob for a query: documents from
// the knowledge bucket filtered by relevance, plus whatever the managed
// retrieval service returns. Knowledge-source failures are never fatal; the
// blob is simply smaller.
type KnowledgeService struct {
	store     storage.ObjectStore
	cache     cache.Documents
	retriever Retriever
	bucket    string
	prefix    string
}

func NewKnowledgeService(store storage.ObjectStore, docCache cache.Documents, retriever Retriever, bucket, prefix string) *KnowledgeService {
	return &KnowledgeService{
		store:     store,
		cache:     docCache,
		retriever: retriever,
		bucket:    bucket,
		prefix:    prefix,
	}
}

// MatchDocuments returns one fragment per document whose content contains
// the query as a case-insensitive substring, in input order, with no
// deduplication. An all-whitespace query matches nothing: the empty
// substring would otherwise match every document, and shipping the whole
// bucket into the prompt for a blank command is never useful.
func MatchDocuments(query string, docs []types.Document) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}
	needle := strings.ToLower(query)
	var b strings.Builder
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Content), needle) {
			log.Printf("Relevant content found in %s", doc.Key)
			fmt.Fprintf(&b, "\nDocument: %s\nContent: %s\n", doc.Key, doc.Content)
		}
	}
	return b.String()
}

// Gather fetches the knowledge documents (via the cache), filters them
// against the query and appends the retrieval-service output.
func (s *KnowledgeService) Gather(ctx context.Context, query string) string {
	relevant := MatchDocuments(query, s.documents(ctx))

	if s.retriever != nil {
		additional, err := s.retriever.Retrieve(ctx, query)
		if err != nil {
			log.Printf("Error invoking retrieve-and-generate: %v", err)
		} else if additional != "" {
			relevant += fmt.Sprintf("\nAdditional KB Content:\n%s\n", additional)
		}
	}

	return relevant
}

func (s *KnowledgeService) documents(ctx context.Context) []types.Document {
	if docs, ok := s.cache.Get(ctx); ok {
		return docs
	}
	docs, err := storage.FetchDocuments(ctx, s.store, s.bucket, s.prefix)
	if err != nil {
		log.Printf("Error accessing knowledge bucket: %v", err)
		return nil
	}
	s.cache.Set(ctx, docs)
	return docs
}
