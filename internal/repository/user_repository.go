package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

// UserRepo persists accounts. Password hashing happens in the caller; the
// repository stores whatever hash it is given.
type UserRepo struct {
	users    collection[model.User]
	sessions *SessionRepo
}

func NewUserRepo(store docstore.Store, sessions *SessionRepo) *UserRepo {
	return &UserRepo{users: collection[model.User]{store: store, name: usersCollection}, sessions: sessions}
}

// UserWhere selects users by equality on the non-zero fields.
type UserWhere struct {
	ID    string
	Email string
	Role  model.Role
}

func (w UserWhere) filter() docstore.Filter {
	f := docstore.Filter{}
	if w.Email != "" {
		f["email"] = normalizeEmail(w.Email)
	}
	if w.Role != "" {
		f["role"] = string(w.Role)
	}
	return f
}

// UserPatch holds the fields Update may change; nil fields are kept.
type UserPatch struct {
	Email           *string
	Password        *string
	Role            *model.Role
	Name            *string
	Phone           *string
	PropertyAddress *string
	PropertyNumber  *string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts u and returns the stored record. The email must not be
// taken by another account.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	u.Email = normalizeEmail(u.Email)
	existing, err := r.FindUnique(ctx, UserWhere{Email: u.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}
	u.ID = newID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	if err := r.users.put(ctx, u.ID, u); err != nil {
		return nil, err
	}
	return u, nil
}

// FindUnique returns the user matching where, or nil when none does.
func (r *UserRepo) FindUnique(ctx context.Context, where UserWhere) (*model.User, error) {
	return r.users.findUnique(ctx, where.ID, where.filter())
}

// FindMany returns matching users, newest first.
func (r *UserRepo) FindMany(ctx context.Context, where UserWhere) ([]*model.User, error) {
	out, err := r.users.find(ctx, where.ID, where.filter())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update merges p into the user matching where.
func (r *UserRepo) Update(ctx context.Context, where UserWhere, p UserPatch) (*model.User, error) {
	u, err := r.FindUnique(ctx, where)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if email != u.Email {
			other, err := r.FindUnique(ctx, UserWhere{Email: email})
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrEmailExists
			}
		}
		u.Email = email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.PropertyAddress != nil {
		u.PropertyAddress = *p.PropertyAddress
	}
	if p.PropertyNumber != nil {
		u.PropertyNumber = *p.PropertyNumber
	}
	u.UpdatedAt = now()
	if err := r.users.put(ctx, u.ID, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user and then every session that belongs to it.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if err := r.users.delete(ctx, id); err != nil {
		return err
	}
	if r.sessions == nil {
		return nil
	}
	_, err := r.sessions.DeleteByUser(ctx, id)
	return err
}

// Count returns how many users match where.
func (r *UserRepo) Count(ctx context.Context, where UserWhere) (int, error) {
	return r.users.count(ctx, where.ID, where.filter())
}
