package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/middleware"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
)

const (
	msgSettingNotFound = "Setting not found"
	msgSettingExists   = "Setting key already exists"
)

// SettingsHandler serves site settings.
type SettingsHandler struct {
	Settings *repository.SiteSettingRepo
}

func NewSettingsHandler(settings *repository.SiteSettingRepo) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

type createSettingReq struct {
	Key         string `json:"key" validate:"required,notblank,max=100"`
	Value       string `json:"value"`
	Description string `json:"description" validate:"max=500"`
	DataType    string `json:"dataType" validate:"omitempty,oneof=string number boolean json"`
	IsPublic    bool   `json:"isPublic"`
}

type updateSettingReq struct {
	Value       *string `json:"value"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	DataType    *string `json:"dataType" validate:"omitempty,oneof=string number boolean json"`
	IsPublic    *bool   `json:"isPublic"`
}

// settingView adds the typed value to a stored setting.
type settingView struct {
	*model.SiteSetting
	ParsedValue any `json:"parsedValue"`
}

func viewSetting(s *model.SiteSetting) settingView {
	return settingView{SiteSetting: s, ParsedValue: s.Parsed()}
}

type settingResp struct {
	Message string      `json:"message,omitempty"`
	Setting settingView `json:"setting"`
}

type settingListResp struct {
	Settings []settingView `json:"settings"`
}

func checkValue(dt model.DataType, value string) error {
	if _, err := model.ParseValue(dt, value); err != nil {
		return apperr.Validation("Value does not match data type: " + err.Error())
	}
	return nil
}

func (h *SettingsHandler) list(c echo.Context, w repository.SiteSettingWhere) error {
	list, err := h.Settings.FindMany(c.Request().Context(), w)
	if err != nil {
		return apperr.Internal(apperr.MsgInternal, err)
	}
	out := make([]settingView, 0, len(list))
	for _, s := range list {
		out = append(out, viewSetting(s))
	}
	return c.JSON(http.StatusOK, settingListResp{Settings: out})
}

// ListPublic: GET /api/settings returns public settings only.
func (h *SettingsHandler) ListPublic(c echo.Context) error {
	public := true
	return h.list(c, repository.SiteSettingWhere{IsPublic: &public})
}

// ListAll: GET /api/admin/settings
func (h *SettingsHandler) ListAll(c echo.Context) error {
	return h.list(c, repository.SiteSettingWhere{})
}

// Create: POST /api/settings
func (h *SettingsHandler) Create(c echo.Context) error {
	var req createSettingReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dt := model.DataType(req.DataType)
	if dt == "" {
		dt = model.DataString
	}
	if err := checkValue(dt, req.Value); err != nil {
		return err
	}
	s, err := h.Settings.Create(c.Request().Context(), &model.SiteSetting{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
		DataType:    dt,
		IsPublic:    req.IsPublic,
		UpdatedBy:   middleware.CurrentUserID(c),
	})
	if err != nil {
		return repoErr(err, msgSettingNotFound, msgSettingExists)
	}
	return c.JSON(http.StatusCreated, settingResp{Message: "Setting created successfully", Setting: viewSetting(s)})
}

func (h *SettingsHandler) byKey(ctx context.Context, key string) (*model.SiteSetting, error) {
	s, err := h.Settings.FindUnique(ctx, repository.SiteSettingWhere{Key: key})
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	if s == nil {
		return nil, apperr.NotFound(msgSettingNotFound)
	}
	return s, nil
}

// Update: PUT /api/settings/:key. The resulting value must parse as the
// resulting data type.
func (h *SettingsHandler) Update(c echo.Context) error {
	var req updateSettingReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	cur, err := h.byKey(ctx, c.Param("key"))
	if err != nil {
		return err
	}

	dt, value := cur.DataType, cur.Value
	if req.DataType != nil {
		dt = model.DataType(*req.DataType)
	}
	if req.Value != nil {
		value = *req.Value
	}
	if err := checkValue(dt, value); err != nil {
		return err
	}

	uid := middleware.CurrentUserID(c)
	patch := repository.SiteSettingPatch{
		Value:       req.Value,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		UpdatedBy:   &uid,
	}
	if req.DataType != nil {
		patch.DataType = &dt
	}
	s, err := h.Settings.Update(ctx, repository.SiteSettingWhere{ID: cur.ID}, patch)
	if err != nil {
		return repoErr(err, msgSettingNotFound, msgSettingExists)
	}
	return c.JSON(http.StatusOK, settingResp{Message: "Setting updated successfully", Setting: viewSetting(s)})
}

// Delete: DELETE /api/settings/:key
func (h *SettingsHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	cur, err := h.byKey(ctx, c.Param("key"))
	if err != nil {
		return err
	}
	if err := h.Settings.Delete(ctx, cur.ID); err != nil {
		return repoErr(err, msgSettingNotFound, msgSettingExists)
	}
	return c.JSON(http.StatusOK, messageResp{Message: "Setting deleted successfully"})
}
