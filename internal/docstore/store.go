// Package docstore is the contract for the remote document store that backs
// every entity, plus its drivers. A store keeps JSON-shaped documents grouped
// in named collections and supports point reads, whole-document writes and
// equality-filtered scans. It never orders or limits results; callers sort
// what they retrieve.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned by Get and Delete when no document has the id.
var ErrNotFound = errors.New("docstore: document not found")

// Document is a decoded JSON object. The "id" field always holds the
// document id.
type Document map[string]any

// Filter holds equality conditions combined with logical AND. An empty or
// nil Filter matches every document in a collection.
type Filter map[string]any

// Store is implemented by every driver.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Find(ctx context.Context, collection string, filter Filter) ([]Document, error)
	Put(ctx context.Context, collection, id string, doc Document) error
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// Encode converts a tagged struct into a Document through its JSON form.
func Encode(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode fills out (a pointer to a tagged struct) from doc.
func Decode(doc Document, out any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// Match reports whether doc satisfies every condition in f. Values are
// compared by their canonical text so an int filter matches the float64 a
// JSON round trip produces.
func Match(doc Document, f Filter) bool {
	for field, want := range f {
		got, ok := doc[field]
		if !ok {
			return false
		}
		if Canonical(got) != Canonical(want) {
			return false
		}
	}
	return true
}

// Canonical renders a scalar the way it appears once unquoted from JSON.
func Canonical(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func decodeJSON(b []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func withID(doc Document, id string) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out["id"] = id
	return out
}
