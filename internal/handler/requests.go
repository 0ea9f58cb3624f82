package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/service"
)

const (
	defaultRequestLimit = 50
	maxRequestLimit     = 200
)

// RequestHandler serves the public request form and the operator inbox.
type RequestHandler struct {
	Requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{Requests: requests}
}

type fileRequestReq struct {
	Type          string `json:"type"`
	Name          string `json:"name" validate:"max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"max=50"`
	Subject       string `json:"subject" validate:"max=300"`
	Message       string `json:"message" validate:"max=5000"`
	PreferredDate string `json:"preferredDate"`
	TimeWindow    string `json:"timeWindow"`
}

type updateRequestReq struct {
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo"`
}

type requestResp struct {
	Message string         `json:"message,omitempty"`
	Request *model.Request `json:"request"`
}

type requestListResp struct {
	Requests []*model.Request `json:"requests"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// Create: POST /api/requests (public).
func (h *RequestHandler) Create(c echo.Context) error {
	var req fileRequestReq
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := h.Requests.File(c.Request().Context(), service.FileInput{
		Type:          req.Type,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Subject:       req.Subject,
		Message:       req.Message,
		PreferredDate: req.PreferredDate,
		TimeWindow:    req.TimeWindow,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, requestResp{Message: "Request submitted successfully", Request: r})
}

// List: GET /api/requests?status=&type=&assignedTo=&limit=&offset=
func (h *RequestHandler) List(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultRequestLimit)
	if err != nil {
		return err
	}
	if limit == 0 || limit > maxRequestLimit {
		limit = maxRequestLimit
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	list, total, err := h.Requests.List(c.Request().Context(), service.ListFilter{
		Status:     c.QueryParam("status"),
		Type:       c.QueryParam("type"),
		AssignedTo: c.QueryParam("assignedTo"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}
	if list == nil {
		list = []*model.Request{}
	}
	return c.JSON(http.StatusOK, requestListResp{Requests: list, Total: total, Limit: limit, Offset: offset})
}

// Get: GET /api/requests/:id
func (h *RequestHandler) Get(c echo.Context) error {
	r, err := h.Requests.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requestResp{Request: r})
}

// Update: PATCH /api/requests/:id sets status and/or assignee.
func (h *RequestHandler) Update(c echo.Context) error {
	var req updateRequestReq
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := h.Requests.Update(c.Request().Context(), c.Param("id"), req.Status, req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requestResp{Message: "Request updated successfully", Request: r})
}

// Delete: DELETE /api/requests/:id
func (h *RequestHandler) Delete(c echo.Context) error {
	if err := h.Requests.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResp{Message: "Request deleted successfully"})
}
