package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

// SiteSettingRepo persists key/value settings. Key is unique.
type SiteSettingRepo struct{ settings collection[model.SiteSetting] }

func NewSiteSettingRepo(store docstore.Store) *SiteSettingRepo {
	return &SiteSettingRepo{settings: collection[model.SiteSetting]{store: store, name: siteSettingsCollection}}
}

type SiteSettingWhere struct {
	ID       string
	Key      string
	IsPublic *bool
}

func (w SiteSettingWhere) filter() docstore.Filter {
	f := docstore.Filter{}
	if w.Key != "" {
		f["key"] = strings.TrimSpace(w.Key)
	}
	if w.IsPublic != nil {
		f["isPublic"] = *w.IsPublic
	}
	return f
}

type SiteSettingPatch struct {
	Value       *string
	Description *string
	DataType    *model.DataType
	IsPublic    *bool
	UpdatedBy   *string
}

func (r *SiteSettingRepo) Create(ctx context.Context, s *model.SiteSetting) (*model.SiteSetting, error) {
	s.Key = strings.TrimSpace(s.Key)
	existing, err := r.FindUnique(ctx, SiteSettingWhere{Key: s.Key})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSettingKeyExists
	}
	if s.DataType == "" {
		s.DataType = model.DataString
	}
	s.ID = newID()
	s.CreatedAt = now()
	s.UpdatedAt = s.CreatedAt
	if err := r.settings.put(ctx, s.ID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SiteSettingRepo) FindUnique(ctx context.Context, where SiteSettingWhere) (*model.SiteSetting, error) {
	return r.settings.findUnique(ctx, where.ID, where.filter())
}

// FindMany returns matching settings ordered by key.
func (r *SiteSettingRepo) FindMany(ctx context.Context, where SiteSettingWhere) ([]*model.SiteSetting, error) {
	out, err := r.settings.find(ctx, where.ID, where.filter())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *SiteSettingRepo) Update(ctx context.Context, where SiteSettingWhere, p SiteSettingPatch) (*model.SiteSetting, error) {
	s, err := r.FindUnique(ctx, where)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotFound
	}
	setIf(&s.Value, p.Value)
	setIf(&s.Description, p.Description)
	setIf(&s.DataType, p.DataType)
	setIf(&s.IsPublic, p.IsPublic)
	setIf(&s.UpdatedBy, p.UpdatedBy)
	s.UpdatedAt = now()
	if err := r.settings.put(ctx, s.ID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SiteSettingRepo) Delete(ctx context.Context, id string) error {
	return r.settings.delete(ctx, id)
}

func (r *SiteSettingRepo) Count(ctx context.Context, where SiteSettingWhere) (int, error) {
	return r.settings.count(ctx, where.ID, where.filter())
}
