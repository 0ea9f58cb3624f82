package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
)

const (
	msgPropertyNotFound = "Property not found"
	msgPropertyExists   = "Property ID already exists"
)

// PropertyHandler serves listings. Public reads omit the owner's contact
// details, which double as the signup check.
type PropertyHandler struct {
	Properties *repository.PropertyRepo
}

func NewPropertyHandler(props *repository.PropertyRepo) *PropertyHandler {
	return &PropertyHandler{Properties: props}
}

type createPropertyReq struct {
	PropertyID   string   `json:"propertyId" validate:"required,notblank,max=64"`
	Title        string   `json:"title" validate:"required,notblank,max=300"`
	Address      string   `json:"address" validate:"required,notblank,max=300"`
	City         string   `json:"city" validate:"max=100"`
	State        string   `json:"state" validate:"max=100"`
	ZipCode      string   `json:"zipCode" validate:"max=20"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=HOUSE CONDO TOWNHOUSE APARTMENT VILLA LAND COMMERCIAL"`
	Bedrooms     int      `json:"bedrooms" validate:"min=0"`
	Bathrooms    float64  `json:"bathrooms" validate:"min=0"`
	Sqft         int      `json:"sqft" validate:"min=0"`
	Price        float64  `json:"price" validate:"min=0"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone" validate:"max=50"`
	IsAvailable  *bool    `json:"isAvailable"`
	IsFeature    bool     `json:"isFeature"`
}

type updatePropertyReq struct {
	PropertyID   *string   `json:"propertyId" validate:"omitempty,notblank,max=64"`
	Title        *string   `json:"title" validate:"omitempty,notblank,max=300"`
	Address      *string   `json:"address" validate:"omitempty,notblank,max=300"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	ZipCode      *string   `json:"zipCode"`
	PropertyType *string   `json:"propertyType" validate:"omitempty,oneof=HOUSE CONDO TOWNHOUSE APARTMENT VILLA LAND COMMERCIAL"`
	Bedrooms     *int      `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms    *float64  `json:"bathrooms" validate:"omitempty,min=0"`
	Sqft         *int      `json:"sqft" validate:"omitempty,min=0"`
	Price        *float64  `json:"price" validate:"omitempty,min=0"`
	Description  *string   `json:"description"`
	Amenities    *[]string `json:"amenities"`
	Images       *[]string `json:"images"`
	Email        *string   `json:"email" validate:"omitempty,email"`
	Phone        *string   `json:"phone"`
	IsAvailable  *bool     `json:"isAvailable"`
	IsFeature    *bool     `json:"isFeature"`
}

// publicProperty is a listing without owner contact details.
type publicProperty struct {
	ID           string             `json:"id"`
	PropertyID   string             `json:"propertyId"`
	Title        string             `json:"title"`
	Address      string             `json:"address"`
	City         string             `json:"city"`
	State        string             `json:"state"`
	ZipCode      string             `json:"zipCode"`
	PropertyType model.PropertyType `json:"propertyType"`
	Bedrooms     int                `json:"bedrooms"`
	Bathrooms    float64            `json:"bathrooms"`
	Sqft         int                `json:"sqft"`
	Price        float64            `json:"price"`
	Description  string             `json:"description"`
	Amenities    []string           `json:"amenities"`
	Images       []string           `json:"images"`
	IsAvailable  bool               `json:"isAvailable"`
	IsFeature    bool               `json:"isFeature"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func toPublicProperty(p *model.Property) publicProperty {
	return publicProperty{
		ID: p.ID, PropertyID: p.PropertyID, Title: p.Title, Address: p.Address,
		City: p.City, State: p.State, ZipCode: p.ZipCode, PropertyType: p.PropertyType,
		Bedrooms: p.Bedrooms, Bathrooms: p.Bathrooms, Sqft: p.Sqft, Price: p.Price,
		Description: p.Description, Amenities: p.Amenities, Images: p.Images,
		IsAvailable: p.IsAvailable, IsFeature: p.IsFeature,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

type propertyResp struct {
	Message  string `json:"message,omitempty"`
	Property any    `json:"property"`
}

type propertyListResp struct {
	Properties []publicProperty `json:"properties"`
}

// List: GET /api/properties?available=&featured=&type=&city=
func (h *PropertyHandler) List(c echo.Context) error {
	w := repository.PropertyWhere{
		PropertyType: model.PropertyType(c.QueryParam("type")),
		City:         c.QueryParam("city"),
	}
	if w.PropertyType != "" && !w.PropertyType.Valid() {
		return apperr.Validation("Invalid type")
	}
	var err error
	if w.IsAvailable, err = queryBool(c, "available"); err != nil {
		return err
	}
	if w.IsFeature, err = queryBool(c, "featured"); err != nil {
		return err
	}
	list, err := h.Properties.FindMany(c.Request().Context(), w)
	if err != nil {
		return apperr.Internal(apperr.MsgInternal, err)
	}
	out := make([]publicProperty, 0, len(list))
	for _, p := range list {
		out = append(out, toPublicProperty(p))
	}
	return c.JSON(http.StatusOK, propertyListResp{Properties: out})
}

// lookup resolves :id as a document id first, then as a propertyId.
func (h *PropertyHandler) lookup(ctx context.Context, id string) (*model.Property, error) {
	p, err := h.Properties.FindUnique(ctx, repository.PropertyWhere{ID: id})
	if err == nil && p == nil {
		p, err = h.Properties.FindUnique(ctx, repository.PropertyWhere{PropertyID: id})
	}
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	if p == nil {
		return nil, apperr.NotFound(msgPropertyNotFound)
	}
	return p, nil
}

// Get: GET /api/properties/:id
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.lookup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyResp{Property: toPublicProperty(p)})
}

// Create: POST /api/properties
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyReq
	if err := bind(c, &req); err != nil {
		return err
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	p, err := h.Properties.Create(c.Request().Context(), &model.Property{
		PropertyID:   req.PropertyID,
		Title:        req.Title,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		PropertyType: model.PropertyType(req.PropertyType),
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Sqft:         req.Sqft,
		Price:        req.Price,
		Description:  req.Description,
		Amenities:    req.Amenities,
		Images:       req.Images,
		Email:        req.Email,
		Phone:        req.Phone,
		IsAvailable:  available,
		IsFeature:    req.IsFeature,
	})
	if err != nil {
		return repoErr(err, msgPropertyNotFound, msgPropertyExists)
	}
	return c.JSON(http.StatusCreated, propertyResp{Message: "Property created successfully", Property: p})
}

// Update: PUT /api/properties/:id
func (h *PropertyHandler) Update(c echo.Context) error {
	var req updatePropertyReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	cur, err := h.lookup(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	patch := repository.PropertyPatch{
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Sqft:        req.Sqft,
		Price:       req.Price,
		Description: req.Description,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Email:       req.Email,
		Phone:       req.Phone,
		IsAvailable: req.IsAvailable,
		IsFeature:   req.IsFeature,
	}
	if req.PropertyType != nil {
		pt := model.PropertyType(*req.PropertyType)
		patch.PropertyType = &pt
	}
	p, err := h.Properties.Update(ctx, repository.PropertyWhere{ID: cur.ID}, patch)
	if err != nil {
		return repoErr(err, msgPropertyNotFound, msgPropertyExists)
	}
	return c.JSON(http.StatusOK, propertyResp{Message: "Property updated successfully", Property: p})
}

// Delete: DELETE /api/properties/:id
func (h *PropertyHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	cur, err := h.lookup(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.Properties.Delete(ctx, cur.ID); err != nil {
		return repoErr(err, msgPropertyNotFound, msgPropertyExists)
	}
	return c.JSON(http.StatusOK, messageResp{Message: "Property deleted successfully"})
}
