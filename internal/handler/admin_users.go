package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/middleware"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/service"
)

// UserAdminHandler is the superadmin's account management.
type UserAdminHandler struct {
	Users *service.UserService
}

func NewUserAdminHandler(users *service.UserService) *UserAdminHandler {
	return &UserAdminHandler{Users: users}
}

type createUserReq struct {
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	Name            string `json:"name" validate:"max=200"`
	Phone           string `json:"phone" validate:"max=50"`
	PropertyAddress string `json:"propertyAddress"`
	PropertyNumber  string `json:"propertyNumber"`
}

type resetPasswordReq struct {
	NewPassword string `json:"newPassword"`
}

type usersResp struct {
	Users []model.PublicUser `json:"users"`
}

// List: GET /api/admin/users?role=
func (h *UserAdminHandler) List(c echo.Context) error {
	role := model.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return apperr.Validation(service.MsgInvalidRole)
	}
	users, err := h.Users.List(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResp{Users: users})
}

// Create: POST /api/admin/users
func (h *UserAdminHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.Users.Create(c.Request().Context(), service.CreateUserInput{
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		Name:            req.Name,
		Phone:           req.Phone,
		PropertyAddress: req.PropertyAddress,
		PropertyNumber:  req.PropertyNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResp{Message: "User created successfully", User: u})
}

// Delete: DELETE /api/admin/users/:id. The caller cannot delete themselves.
func (h *UserAdminHandler) Delete(c echo.Context) error {
	if err := h.Users.Delete(c.Request().Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResp{Message: "User deleted successfully"})
}

// ResetPassword: POST /api/admin/users/:id/reset-password
func (h *UserAdminHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.Users.ResetPassword(c.Request().Context(), c.Param("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResp{Message: "Password reset successfully"})
}
