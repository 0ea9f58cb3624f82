package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/luxylyfe/portal/internal/docstore"
)

// Collection names in the document store.
const (
	usersCollection         = "users"
	sessionsCollection      = "sessions"
	loginAttemptsCollection = "login_attempts"
	propertiesCollection    = "properties"
	pageContentCollection   = "page_content"
	siteSettingsCollection  = "site_settings"
	requestsCollection      = "requests"
)

// now is the clock used for createdAt/updatedAt stamps. Monotonic readings
// are dropped so stamped values compare equal after a store round trip.
var now = func() time.Time { return time.Now().UTC().Round(0) }

func newID() string { return uuid.NewString() }

// collection is the typed view of one document collection shared by every
// entity repository.
type collection[T any] struct {
	store docstore.Store
	name  string
}

func decode[T any](doc docstore.Document) (*T, error) {
	v := new(T)
	if err := docstore.Decode(doc, v); err != nil {
		return nil, err
	}
	return v, nil
}

// findUnique does a point read when id is set (the remaining filter must
// also match) and otherwise returns the first document matching f.
func (c collection[T]) findUnique(ctx context.Context, id string, f docstore.Filter) (*T, error) {
	if id != "" {
		doc, err := c.store.Get(ctx, c.name, id)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if !docstore.Match(doc, f) {
			return nil, nil
		}
		return decode[T](doc)
	}
	if len(f) == 0 {
		return nil, errNoUniqueKey
	}
	docs, err := c.store.Find(ctx, c.name, f)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return decode[T](docs[0])
}

// find returns every document matching id (when set) and f, unsorted.
func (c collection[T]) find(ctx context.Context, id string, f docstore.Filter) ([]*T, error) {
	if id != "" {
		v, err := c.findUnique(ctx, id, f)
		if err != nil || v == nil {
			return nil, err
		}
		return []*T{v}, nil
	}
	docs, err := c.store.Find(ctx, c.name, f)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c collection[T]) count(ctx context.Context, id string, f docstore.Filter) (int, error) {
	if id != "" {
		v, err := c.findUnique(ctx, id, f)
		if err != nil || v == nil {
			return 0, err
		}
		return 1, nil
	}
	docs, err := c.store.Find(ctx, c.name, f)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (c collection[T]) put(ctx context.Context, id string, v *T) error {
	doc, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, c.name, id, doc)
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, c.name, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Page bounds a sorted result set. Zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

func paginate[T any](items []T, p Page) []T {
	if p.Offset > 0 {
		if p.Offset >= len(items) {
			return items[:0]
		}
		items = items[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}
