package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

// PropertyRepo persists listings. PropertyID is the unique business key.
type PropertyRepo struct{ props collection[model.Property] }

func NewPropertyRepo(store docstore.Store) *PropertyRepo {
	return &PropertyRepo{props: collection[model.Property]{store: store, name: propertiesCollection}}
}

type PropertyWhere struct {
	ID           string
	PropertyID   string
	PropertyType model.PropertyType
	City         string
	IsAvailable  *bool
	IsFeature    *bool
}

func (w PropertyWhere) filter() docstore.Filter {
	f := docstore.Filter{}
	if w.PropertyID != "" {
		f["propertyId"] = strings.TrimSpace(w.PropertyID)
	}
	if w.PropertyType != "" {
		f["propertyType"] = string(w.PropertyType)
	}
	if w.City != "" {
		f["city"] = w.City
	}
	if w.IsAvailable != nil {
		f["isAvailable"] = *w.IsAvailable
	}
	if w.IsFeature != nil {
		f["isFeature"] = *w.IsFeature
	}
	return f
}

type PropertyPatch struct {
	PropertyID   *string
	Title        *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	PropertyType *model.PropertyType
	Bedrooms     *int
	Bathrooms    *float64
	Sqft         *int
	Price        *float64
	Description  *string
	Amenities    *[]string
	Images       *[]string
	Email        *string
	Phone        *string
	IsAvailable  *bool
	IsFeature    *bool
}

func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) (*model.Property, error) {
	p.PropertyID = strings.TrimSpace(p.PropertyID)
	existing, err := r.FindUnique(ctx, PropertyWhere{PropertyID: p.PropertyID})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPropertyIDExists
	}
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if err := r.props.put(ctx, p.ID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepo) FindUnique(ctx context.Context, where PropertyWhere) (*model.Property, error) {
	return r.props.findUnique(ctx, where.ID, where.filter())
}

// FindMany returns matching listings, newest first.
func (r *PropertyRepo) FindMany(ctx context.Context, where PropertyWhere) ([]*model.Property, error) {
	out, err := r.props.find(ctx, where.ID, where.filter())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PropertyRepo) Update(ctx context.Context, where PropertyWhere, p PropertyPatch) (*model.Property, error) {
	prop, err := r.FindUnique(ctx, where)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, ErrNotFound
	}
	if p.PropertyID != nil {
		pid := strings.TrimSpace(*p.PropertyID)
		if pid != prop.PropertyID {
			other, err := r.FindUnique(ctx, PropertyWhere{PropertyID: pid})
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrPropertyIDExists
			}
		}
		prop.PropertyID = pid
	}
	setIf(&prop.Title, p.Title)
	setIf(&prop.Address, p.Address)
	setIf(&prop.City, p.City)
	setIf(&prop.State, p.State)
	setIf(&prop.ZipCode, p.ZipCode)
	setIf(&prop.PropertyType, p.PropertyType)
	setIf(&prop.Bedrooms, p.Bedrooms)
	setIf(&prop.Bathrooms, p.Bathrooms)
	setIf(&prop.Sqft, p.Sqft)
	setIf(&prop.Price, p.Price)
	setIf(&prop.Description, p.Description)
	setIf(&prop.Amenities, p.Amenities)
	setIf(&prop.Images, p.Images)
	setIf(&prop.Email, p.Email)
	setIf(&prop.Phone, p.Phone)
	setIf(&prop.IsAvailable, p.IsAvailable)
	setIf(&prop.IsFeature, p.IsFeature)
	prop.UpdatedAt = now()
	if err := r.props.put(ctx, prop.ID, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	return r.props.delete(ctx, id)
}

func (r *PropertyRepo) Count(ctx context.Context, where PropertyWhere) (int, error) {
	return r.props.count(ctx, where.ID, where.filter())
}

// setIf copies *src into dst when src is non-nil.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
