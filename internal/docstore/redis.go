package docstore

// The Redis driver keeps each document as a JSON string under
// <prefix>:<collection>:<id> and the ids of a collection in the set
// <prefix>:<collection>:ids. Find loads the whole collection and filters
// in process; Redis has no secondary indexes to lean on.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a go-redis client.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis wraps rdb. prefix namespaces every key ("luxylyfe" when empty).
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "luxylyfe"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) docKey(collection, id string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, collection, id)
}

func (r *Redis) idsKey(collection string) string {
	return fmt.Sprintf("%s:%s:ids", r.prefix, collection)
}

func (r *Redis) Get(ctx context.Context, collection, id string) (Document, error) {
	b, err := r.rdb.Get(ctx, r.docKey(collection, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeJSON(b)
}

func (r *Redis) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	ids, err := r.rdb.SMembers(ctx, r.idsKey(collection)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(collection, id)
	}
	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	var out []Document
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// id left in the set after a partial delete
			continue
		}
		doc, err := decodeJSON([]byte(s))
		if err != nil {
			return nil, err
		}
		if Match(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *Redis) Put(ctx context.Context, collection, id string, doc Document) error {
	b, err := json.Marshal(withID(doc, id))
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.docKey(collection, id), b, 0)
		p.SAdd(ctx, r.idsKey(collection), id)
		return nil
	})
	return err
}

func (r *Redis) Delete(ctx context.Context, collection, id string) error {
	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, r.docKey(collection, id))
		p.SRem(ctx, r.idsKey(collection), id)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) Close() error { return r.rdb.Close() }
