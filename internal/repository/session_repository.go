package repository

import (
	"context"
	"sort"
	"time"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

// SessionRepo persists login sessions keyed by their token.
type SessionRepo struct{ sessions collection[model.Session] }

func NewSessionRepo(store docstore.Store) *SessionRepo {
	return &SessionRepo{sessions: collection[model.Session]{store: store, name: sessionsCollection}}
}

type SessionWhere struct {
	ID     string
	Token  string
	UserID string
}

func (w SessionWhere) filter() docstore.Filter {
	f := docstore.Filter{}
	if w.Token != "" {
		f["token"] = w.Token
	}
	if w.UserID != "" {
		f["userId"] = w.UserID
	}
	return f
}

type SessionPatch struct {
	ExpiresAt *time.Time
}

func (r *SessionRepo) Create(ctx context.Context, s *model.Session) (*model.Session, error) {
	s.ID = newID()
	s.CreatedAt = now()
	if err := r.sessions.put(ctx, s.ID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) FindUnique(ctx context.Context, where SessionWhere) (*model.Session, error) {
	return r.sessions.findUnique(ctx, where.ID, where.filter())
}

func (r *SessionRepo) FindMany(ctx context.Context, where SessionWhere) ([]*model.Session, error) {
	out, err := r.sessions.find(ctx, where.ID, where.filter())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update changes the expiry of the matching session. Sessions carry no
// updatedAt stamp.
func (r *SessionRepo) Update(ctx context.Context, where SessionWhere, p SessionPatch) (*model.Session, error) {
	s, err := r.FindUnique(ctx, where)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotFound
	}
	if p.ExpiresAt != nil {
		s.ExpiresAt = p.ExpiresAt.UTC()
	}
	if err := r.sessions.put(ctx, s.ID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return r.sessions.delete(ctx, id)
}

// DeleteByToken removes the session holding token. It reports whether a
// session was found; a missing session is not an error.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) (bool, error) {
	s, err := r.FindUnique(ctx, SessionWhere{Token: token})
	if err != nil || s == nil {
		return false, err
	}
	if err := r.sessions.delete(ctx, s.ID); err != nil && err != ErrNotFound {
		return false, err
	}
	return true, nil
}

// DeleteByUser removes every session of userID and returns how many went.
func (r *SessionRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	list, err := r.sessions.find(ctx, "", docstore.Filter{"userId": userID})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range list {
		if err := r.sessions.delete(ctx, s.ID); err != nil {
			if err == ErrNotFound {
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *SessionRepo) Count(ctx context.Context, where SessionWhere) (int, error) {
	return r.sessions.count(ctx, where.ID, where.filter())
}
