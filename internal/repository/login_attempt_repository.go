package repository

import (
	"context"
	"sort"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

// LoginAttemptRepo is the append-only login audit log.
type LoginAttemptRepo struct{ attempts collection[model.LoginAttempt] }

func NewLoginAttemptRepo(store docstore.Store) *LoginAttemptRepo {
	return &LoginAttemptRepo{attempts: collection[model.LoginAttempt]{store: store, name: loginAttemptsCollection}}
}

type LoginAttemptWhere struct {
	ID        string
	Email     string
	IPAddress string
	Success   *bool
}

func (w LoginAttemptWhere) filter() docstore.Filter {
	f := docstore.Filter{}
	if w.Email != "" {
		f["email"] = normalizeEmail(w.Email)
	}
	if w.IPAddress != "" {
		f["ipAddress"] = w.IPAddress
	}
	if w.Success != nil {
		f["success"] = *w.Success
	}
	return f
}

type LoginAttemptPatch struct {
	Success *bool
}

func (r *LoginAttemptRepo) Create(ctx context.Context, a *model.LoginAttempt) (*model.LoginAttempt, error) {
	a.ID = newID()
	a.Email = normalizeEmail(a.Email)
	a.CreatedAt = now()
	if err := r.attempts.put(ctx, a.ID, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *LoginAttemptRepo) FindUnique(ctx context.Context, where LoginAttemptWhere) (*model.LoginAttempt, error) {
	if where.ID == "" {
		return nil, errNoUniqueKey
	}
	return r.attempts.findUnique(ctx, where.ID, where.filter())
}

// FindMany returns matching attempts, newest first.
func (r *LoginAttemptRepo) FindMany(ctx context.Context, where LoginAttemptWhere) ([]*model.LoginAttempt, error) {
	out, err := r.attempts.find(ctx, where.ID, where.filter())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *LoginAttemptRepo) Update(ctx context.Context, where LoginAttemptWhere, p LoginAttemptPatch) (*model.LoginAttempt, error) {
	a, err := r.FindUnique(ctx, where)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	if p.Success != nil {
		a.Success = *p.Success
	}
	if err := r.attempts.put(ctx, a.ID, a); err != nil {
		return nil, err
	}
	return a, nil
}

// MarkLatestSuccessful flips the newest unsuccessful attempt for email and
// ip to successful. It is a no-op when there is none.
func (r *LoginAttemptRepo) MarkLatestSuccessful(ctx context.Context, email, ip string) error {
	failed := false
	list, err := r.FindMany(ctx, LoginAttemptWhere{Email: email, IPAddress: ip, Success: &failed})
	if err != nil || len(list) == 0 {
		return err
	}
	ok := true
	_, err = r.Update(ctx, LoginAttemptWhere{ID: list[0].ID}, LoginAttemptPatch{Success: &ok})
	return err
}

func (r *LoginAttemptRepo) Delete(ctx context.Context, id string) error {
	return r.attempts.delete(ctx, id)
}

func (r *LoginAttemptRepo) Count(ctx context.Context, where LoginAttemptWhere) (int, error) {
	return r.attempts.count(ctx, where.ID, where.filter())
}
