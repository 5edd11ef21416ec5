package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cloudservices/kbot/types"
)

const redisDocumentsKey = "kbot:knowledge:documents"

// Redis caches documents in Redis so multiple server instances share one
// fetch. Cache errors are never fatal: a failed Get is a miss, a failed Set
// is logged and dropped.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context) ([]types.Document, bool) {
	data, err := r.client.Get(ctx, redisDocumentsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error reading document cache: %v", err)
		}
		return nil, false
	}
	var docs []types.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		log.Printf("Error decoding document cache: %v", err)
		return nil, false
	}
	return docs, true
}

func (r *Redis) Set(ctx context.Context, docs []types.Document) {
	data, err := json.Marshal(docs)
	if err != nil {
		log.Printf("Error encoding document cache: %v", err)
		return
	}
	if err := r.client.Set(ctx, redisDocumentsKey, data, r.ttl).Err(); err != nil {
		log.Printf("Error writing document cache: %v", err)
	}
}

func (r *Redis) Invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, redisDocumentsKey).Err(); err != nil {
		log.Printf("Error invalidating document cache: %v", err)
	}
}
