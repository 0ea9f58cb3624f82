package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/middleware"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
)

const msgContentNotFound = "Content not found"

// ContentHandler serves CMS page blocks.
type ContentHandler struct {
	Content *repository.PageContentRepo
}

func NewContentHandler(content *repository.PageContentRepo) *ContentHandler {
	return &ContentHandler{Content: content}
}

type createContentReq struct {
	PageType    string   `json:"pageType" validate:"required,oneof=HOME PROJECTS ABOUT CONTACT"`
	SectionType string   `json:"sectionType" validate:"required,oneof=HERO FEATURES GALLERY TEXT TESTIMONIALS CTA"`
	Title       string   `json:"title" validate:"max=300"`
	Subtitle    string   `json:"subtitle" validate:"max=300"`
	Content     string   `json:"content"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Order       int      `json:"order" validate:"min=0"`
	IsActive    *bool    `json:"isActive"`
}

type updateContentReq struct {
	PageType    *string   `json:"pageType" validate:"omitempty,oneof=HOME PROJECTS ABOUT CONTACT"`
	SectionType *string   `json:"sectionType" validate:"omitempty,oneof=HERO FEATURES GALLERY TEXT TESTIMONIALS CTA"`
	Title       *string   `json:"title" validate:"omitempty,max=300"`
	Subtitle    *string   `json:"subtitle" validate:"omitempty,max=300"`
	Content     *string   `json:"content"`
	Images      *[]string `json:"images"`
	Order       *int      `json:"order" validate:"omitempty,min=0"`
	IsActive    *bool     `json:"isActive"`
}

type contentResp struct {
	Message string             `json:"message,omitempty"`
	Content *model.PageContent `json:"content"`
}

type contentListResp struct {
	Content []*model.PageContent `json:"content"`
}

func contentWhere(c echo.Context) (repository.PageContentWhere, error) {
	w := repository.PageContentWhere{
		PageType:    model.PageType(c.QueryParam("pageType")),
		SectionType: model.SectionType(c.QueryParam("sectionType")),
	}
	if w.PageType != "" && !w.PageType.Valid() {
		return w, apperr.Validation("Invalid pageType")
	}
	if w.SectionType != "" && !w.SectionType.Valid() {
		return w, apperr.Validation("Invalid sectionType")
	}
	return w, nil
}

func (h *ContentHandler) list(c echo.Context, w repository.PageContentWhere) error {
	blocks, err := h.Content.FindMany(c.Request().Context(), w)
	if err != nil {
		return apperr.Internal(apperr.MsgInternal, err)
	}
	if blocks == nil {
		blocks = []*model.PageContent{}
	}
	return c.JSON(http.StatusOK, contentListResp{Content: blocks})
}

// ListPublic: GET /api/content?pageType=&sectionType= returns active blocks.
func (h *ContentHandler) ListPublic(c echo.Context) error {
	w, err := contentWhere(c)
	if err != nil {
		return err
	}
	active := true
	w.IsActive = &active
	return h.list(c, w)
}

// ListAll: GET /api/admin/content includes inactive blocks.
func (h *ContentHandler) ListAll(c echo.Context) error {
	w, err := contentWhere(c)
	if err != nil {
		return err
	}
	if w.IsActive, err = queryBool(c, "isActive"); err != nil {
		return err
	}
	return h.list(c, w)
}

// Create: POST /api/content
func (h *ContentHandler) Create(c echo.Context) error {
	var req createContentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	block, err := h.Content.Create(c.Request().Context(), &model.PageContent{
		PageType:    model.PageType(req.PageType),
		SectionType: model.SectionType(req.SectionType),
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Content:     req.Content,
		Images:      req.Images,
		Order:       req.Order,
		IsActive:    active,
		CreatedBy:   middleware.CurrentUserID(c),
	})
	if err != nil {
		return apperr.Internal(apperr.MsgInternal, err)
	}
	return c.JSON(http.StatusCreated, contentResp{Message: "Content created successfully", Content: block})
}

// Update: PUT /api/content/:id merges the supplied fields.
func (h *ContentHandler) Update(c echo.Context) error {
	var req updateContentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	uid := middleware.CurrentUserID(c)
	patch := repository.PageContentPatch{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   req.Content,
		Images:    req.Images,
		Order:     req.Order,
		IsActive:  req.IsActive,
		UpdatedBy: &uid,
	}
	if req.PageType != nil {
		pt := model.PageType(*req.PageType)
		patch.PageType = &pt
	}
	if req.SectionType != nil {
		st := model.SectionType(*req.SectionType)
		patch.SectionType = &st
	}
	block, err := h.Content.Update(c.Request().Context(), repository.PageContentWhere{ID: c.Param("id")}, patch)
	if err != nil {
		return repoErr(err, msgContentNotFound, "")
	}
	return c.JSON(http.StatusOK, contentResp{Message: "Content updated successfully", Content: block})
}

// Delete: DELETE /api/content/:id
func (h *ContentHandler) Delete(c echo.Context) error {
	if err := h.Content.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return repoErr(err, msgContentNotFound, "")
	}
	return c.JSON(http.StatusOK, messageResp{Message: "Content deleted successfully"})
}
