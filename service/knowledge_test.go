package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudservices/kbot/cache"
	"github.com/cloudservices/kbot/types"
)

type fakeStore struct {
	objects  map[string][]byte
	keys     []string
	listErr  error
	getCalls int
}

func (f *fakeStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.keys, nil
}

func (f *fakeStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	f.getCalls++
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return body, nil
}

func (f *fakeStore) Put(ctx context.Context, bucket, key string, body []byte) error {
	return nil
}

type fakeRetriever struct {
	text  string
	err   error
	calls int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestMatchDocumentsCaseInsensitiveSubstring(t *testing.T) {
	docs := []types.Document{
		{Key: "doc1", Content: "Our REFUND Policy allows 30 days"},
		{Key: "doc2", Content: "Shipping info only"},
	}

	blob := MatchDocuments("refund policy", docs)
	assert.Equal(t, "\nDocument: doc1\nContent: Our REFUND Policy allows 30 days\n", blob)
}

func TestMatchDocumentsPreservesInputOrder(t *testing.T) {
	docs := []types.Document{
		{Key: "b", Content: "widget two"},
		{Key: "a", Content: "widget one"},
		{Key: "c", Content: "nothing relevant"},
	}

	blob := MatchDocuments("widget", docs)
	assert.Equal(t, "\nDocument: b\nContent: widget two\n\nDocument: a\nContent: widget one\n", blob)
}

func TestMatchDocumentsEmptyQueryMatchesNothing(t *testing.T) {
	docs := []types.Document{{Key: "doc1", Content: "anything"}}

	assert.Empty(t, MatchDocuments("", docs))
	assert.Empty(t, MatchDocuments("   ", docs))
}

func TestMatchDocumentsDoesNotMutateInput(t *testing.T) {
	docs := []types.Document{{Key: "doc1", Content: "Mixed Case Content"}}
	MatchDocuments("mixed", docs)
	assert.Equal(t, "Mixed Case Content", docs[0].Content)
}

func TestGatherAppendsRetrievalContent(t *testing.T) {
	store := &fakeStore{
		keys:    []string{"doc1"},
		objects: map[string][]byte{"doc1": []byte("refund policy text")},
	}
	retriever := &fakeRetriever{text: "external answer"}
	svc := NewKnowledgeService(store, cache.NewNone(), retriever, "kb", "")

	blob := svc.Gather(context.Background(), "refund")
	assert.Equal(t, "\nDocument: doc1\nContent: refund policy text\n\nAdditional KB Content:\nexternal answer\n", blob)
	assert.Equal(t, 1, retriever.calls)
}

func TestGatherSurvivesStoreFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("access denied")}
	retriever := &fakeRetriever{text: "external answer"}
	svc := NewKnowledgeService(store, cache.NewNone(), retriever, "kb", "")

	blob := svc.Gather(context.Background(), "refund")
	assert.Equal(t, "\nAdditional KB Content:\nexternal answer\n", blob)
}

func TestGatherSurvivesRetrieverFailure(t *testing.T) {
	store := &fakeStore{
		keys:    []string{"doc1"},
		objects: map[string][]byte{"doc1": []byte("refund policy text")},
	}
	retriever := &fakeRetriever{err: errors.New("throttled")}
	svc := NewKnowledgeService(store, cache.NewNone(), retriever, "kb", "")

	blob := svc.Gather(context.Background(), "refund")
	assert.Equal(t, "\nDocument: doc1\nContent: refund policy text\n", blob)
}

func TestGatherUsesCache(t *testing.T) {
	store := &fakeStore{
		keys:    []string{"doc1"},
		objects: map[string][]byte{"doc1": []byte("refund policy text")},
	}
	svc := NewKnowledgeService(store, cache.NewMemory(time.Minute), nil, "kb", "")

	first := svc.Gather(context.Background(), "refund")
	second := svc.Gather(context.Background(), "refund")
	require.Equal(t, first, second)
	assert.Equal(t, 1, store.getCalls)
}
