package repository

import (
	"context"
	"sort"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

// PageContentRepo persists CMS blocks.
type PageContentRepo struct{ blocks collection[model.PageContent] }

func NewPageContentRepo(store docstore.Store) *PageContentRepo {
	return &PageContentRepo{blocks: collection[model.PageContent]{store: store, name: pageContentCollection}}
}

type PageContentWhere struct {
	ID          string
	PageType    model.PageType
	SectionType model.SectionType
	IsActive    *bool
}

func (w PageContentWhere) filter() docstore.Filter {
	f := docstore.Filter{}
	if w.PageType != "" {
		f["pageType"] = string(w.PageType)
	}
	if w.SectionType != "" {
		f["sectionType"] = string(w.SectionType)
	}
	if w.IsActive != nil {
		f["isActive"] = *w.IsActive
	}
	return f
}

type PageContentPatch struct {
	PageType    *model.PageType
	SectionType *model.SectionType
	Title       *string
	Subtitle    *string
	Content     *string
	Images      *[]string
	Order       *int
	IsActive    *bool
	UpdatedBy   *string
}

func (r *PageContentRepo) Create(ctx context.Context, c *model.PageContent) (*model.PageContent, error) {
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	if c.UpdatedBy == "" {
		c.UpdatedBy = c.CreatedBy
	}
	if err := r.blocks.put(ctx, c.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PageContentRepo) FindUnique(ctx context.Context, where PageContentWhere) (*model.PageContent, error) {
	if where.ID == "" {
		return nil, errNoUniqueKey
	}
	return r.blocks.findUnique(ctx, where.ID, where.filter())
}

// FindMany returns matching blocks by Order ascending; equal orders put the
// most recently created block first.
func (r *PageContentRepo) FindMany(ctx context.Context, where PageContentWhere) ([]*model.PageContent, error) {
	out, err := r.blocks.find(ctx, where.ID, where.filter())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PageContentRepo) Update(ctx context.Context, where PageContentWhere, p PageContentPatch) (*model.PageContent, error) {
	c, err := r.FindUnique(ctx, where)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	setIf(&c.PageType, p.PageType)
	setIf(&c.SectionType, p.SectionType)
	setIf(&c.Title, p.Title)
	setIf(&c.Subtitle, p.Subtitle)
	setIf(&c.Content, p.Content)
	setIf(&c.Images, p.Images)
	setIf(&c.Order, p.Order)
	setIf(&c.IsActive, p.IsActive)
	setIf(&c.UpdatedBy, p.UpdatedBy)
	c.UpdatedAt = now()
	if err := r.blocks.put(ctx, c.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PageContentRepo) Delete(ctx context.Context, id string) error {
	return r.blocks.delete(ctx, id)
}

func (r *PageContentRepo) Count(ctx context.Context, where PageContentWhere) (int, error) {
	return r.blocks.count(ctx, where.ID, where.filter())
}
