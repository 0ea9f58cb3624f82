package repository

import (
	"context"
	"sort"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

// RequestRepo persists contact and viewing tickets.
type RequestRepo struct{ reqs collection[model.Request] }

func NewRequestRepo(store docstore.Store) *RequestRepo {
	return &RequestRepo{reqs: collection[model.Request]{store: store, name: requestsCollection}}
}

type RequestWhere struct {
	ID         string
	Type       model.RequestType
	Status     model.RequestStatus
	AssignedTo string
}

func (w RequestWhere) filter() docstore.Filter {
	f := docstore.Filter{}
	if w.Type != "" {
		f["type"] = string(w.Type)
	}
	if w.Status != "" {
		f["status"] = string(w.Status)
	}
	if w.AssignedTo != "" {
		f["assignedTo"] = w.AssignedTo
	}
	return f
}

type RequestPatch struct {
	Status     *model.RequestStatus
	AssignedTo *string
}

// Create files a ticket. New tickets start PENDING unless a status is given.
func (r *RequestRepo) Create(ctx context.Context, req *model.Request) (*model.Request, error) {
	if req.Status == "" {
		req.Status = model.StatusPending
	}
	req.ID = newID()
	req.Email = normalizeEmail(req.Email)
	req.CreatedAt = now()
	req.UpdatedAt = req.CreatedAt
	if err := r.reqs.put(ctx, req.ID, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *RequestRepo) FindUnique(ctx context.Context, where RequestWhere) (*model.Request, error) {
	if where.ID == "" {
		return nil, errNoUniqueKey
	}
	return r.reqs.findUnique(ctx, where.ID, where.filter())
}

// FindMany returns matching tickets newest first, then applies page. The
// second result is the total before paging.
func (r *RequestRepo) FindMany(ctx context.Context, where RequestWhere, page Page) ([]*model.Request, int, error) {
	out, err := r.reqs.find(ctx, where.ID, where.filter())
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, page), len(out), nil
}

// Update applies an operator change. Status transitions are unconstrained.
func (r *RequestRepo) Update(ctx context.Context, where RequestWhere, p RequestPatch) (*model.Request, error) {
	req, err := r.FindUnique(ctx, where)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	setIf(&req.Status, p.Status)
	setIf(&req.AssignedTo, p.AssignedTo)
	req.UpdatedAt = now()
	if err := r.reqs.put(ctx, req.ID, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *RequestRepo) Delete(ctx context.Context, id string) error {
	return r.reqs.delete(ctx, id)
}

func (r *RequestRepo) Count(ctx context.Context, where RequestWhere) (int, error) {
	return r.reqs.count(ctx, where.ID, where.filter())
}
