package handler

import (
	"context"
	"errors"

	"github.com/cloudservices/kbot/types"
)

type fakeAsker struct {
	prompt   string
	response string
	err      error
	calls    int
	lastQry  string
}

func (f *fakeAsker) Ask(ctx context.Context, query string) (string, string, error) {
	f.calls++
	f.lastQry = query
	return f.prompt, f.response, f.err
}

type fakeSlack struct {
	calls   int
	lastURL string
	lastMsg types.SlackMessage
	err     error
}

func (f *fakeSlack) PostResponse(ctx context.Context, url string, msg types.SlackMessage) error {
	f.calls++
	f.lastURL = url
	f.lastMsg = msg
	return f.err
}

type fakeObjectStore struct {
	objects   map[string][]byte
	keys      []string
	listCalls int
	getCalls  int
	putCalls  int
	putKeys   []string
	putBodies map[string][]byte
	putErr    error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects:   map[string][]byte{},
		putBodies: map[string][]byte{},
	}
}

func (f *fakeObjectStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	f.listCalls++
	return f.keys, nil
}

func (f *fakeObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	f.getCalls++
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return body, nil
}

func (f *fakeObjectStore) Put(ctx context.Context, bucket, key string, body []byte) error {
	f.putCalls++
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	f.putBodies[key] = body
	return nil
}
