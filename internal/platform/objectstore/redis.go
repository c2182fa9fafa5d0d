package objectstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	bodyField        = "body"
	contentTypeField = "content_type"
	metadataPrefix   = "meta:"
)

// Redis stores objects as redis hashes.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns new Redis storing objects under keys with provided prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

// Get returns object with body or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (*Object, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+key).Result()
	if err != nil {
		return nil, fmt.Errorf("can't get object %q: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	return toObject(key, fields, true), nil
}

// Head returns object metadata or ErrNotFound.
func (r *Redis) Head(ctx context.Context, key string) (*Object, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+key).Result()
	if err != nil {
		return nil, fmt.Errorf("can't head object %q: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	return toObject(key, fields, false), nil
}

// Put creates or overwrites object.
// Previous object metadata is dropped in the same transaction.
func (r *Redis) Put(ctx context.Context, key string, body []byte, opts PutOptions) error {
	values := make(map[string]any, len(opts.Metadata)+2)
	values[bodyField] = body
	values[contentTypeField] = opts.ContentType
	for k, v := range opts.Metadata {
		values[metadataPrefix+strings.ToLower(k)] = v
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.prefix+key)
		pipe.HSet(ctx, r.prefix+key, values)
		return nil
	})
	if err != nil {
		return fmt.Errorf("can't put object %q: %w", key, err)
	}
	return nil
}

func toObject(key string, fields map[string]string, withBody bool) *Object {
	obj := &Object{
		Key:         key,
		ContentType: fields[contentTypeField],
		Metadata:    make(map[string]string),
	}
	if withBody {
		obj.Body = []byte(fields[bodyField])
	}
	for field, value := range fields {
		if name, ok := strings.CutPrefix(field, metadataPrefix); ok {
			obj.Metadata[name] = value
		}
	}
	return obj
}
