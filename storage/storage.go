package storage

import (
	"bytes"
	"context"
	"errors"
	"log"
	"unicode/utf8"

	"github.com/cloudservices/kbot/types"
)

// ObjectStore is the object-store port used for knowledge documents, issue
// records and generated answers.
type ObjectStore interface {
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, body []byte) error
}

var errBinaryObject = errors.New("object content is not text")

// DecodeText decodes an object body as UTF-8, falling back to Latin-1.
// Bodies containing NUL bytes are treated as binary and rejected.
func DecodeText(body []byte) (string, error) {
	if bytes.IndexByte(body, 0) >= 0 {
		return "", errBinaryObject
	}
	if utf8.Valid(body) {
		return string(body), nil
	}
	runes := make([]rune, len(body))
	for i, b := range body {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// FetchDocuments lists the bucket under prefix and downloads every object as
// a decoded text document, preserving listing order. Objects that cannot be
// decoded are skipped with a warning; a failed download skips the object
// rather than aborting the batch.
func FetchDocuments(ctx context.Context, store ObjectStore, bucket, prefix string) ([]types.Document, error) {
	keys, err := store.List(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}
	docs := make([]types.Document, 0, len(keys))
	for _, key := range keys {
		body, err := store.Get(ctx, bucket, key)
		if err != nil {
			log.Printf("Error fetching %s from %s: %v", key, bucket, err)
			continue
		}
		content, err := DecodeText(body)
		if err != nil {
			log.Printf("Error decoding content from %s: %v", key, err)
			continue
		}
		docs = append(docs, types.Document{Key: key, Content: content})
	}
	return docs, nil
}
