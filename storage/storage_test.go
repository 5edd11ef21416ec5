package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTextUTF8(t *testing.T) {
	got, err := DecodeText([]byte("plain utf-8 with ümlauts"))
	require.NoError(t, err)
	assert.Equal(t, "plain utf-8 with ümlauts", got)
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	// 0xE9 is 'é' in Latin-1 and invalid as a standalone UTF-8 byte.
	got, err := DecodeText([]byte{'c', 'a', 'f', 0xE9})
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestDecodeTextRejectsBinary(t *testing.T) {
	_, err := DecodeText([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}

type stubStore struct {
	keys    []string
	objects map[string][]byte
	listErr error
}

func (s *stubStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.keys, nil
}

func (s *stubStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	body, ok := s.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return body, nil
}

func (s *stubStore) Put(ctx context.Context, bucket, key string, body []byte) error {
	return nil
}

func TestFetchDocumentsSkipsBadObjects(t *testing.T) {
	store := &stubStore{
		keys: []string{"a.txt", "binary.bin", "missing.txt", "b.txt"},
		objects: map[string][]byte{
			"a.txt":      []byte("first"),
			"binary.bin": {0x00, 0xFF},
			"b.txt":      []byte("second"),
		},
	}

	docs, err := FetchDocuments(context.Background(), store, "kb", "")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Key)
	assert.Equal(t, "first", docs[0].Content)
	assert.Equal(t, "b.txt", docs[1].Key)
}

func TestFetchDocumentsListFailure(t *testing.T) {
	store := &stubStore{listErr: errors.New("access denied")}

	_, err := FetchDocuments(context.Background(), store, "kb", "")
	assert.Error(t, err)
}
