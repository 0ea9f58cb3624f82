package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/middleware"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/service"
	"github.com/luxylyfe/portal/internal/utils"
)

// AuthHandler serves login, logout, signup and the current-user probe.
type AuthHandler struct {
	Auth *service.AuthService
	// SecureCookie marks the session cookie Secure; set in production.
	SecureCookie bool
}

func NewAuthHandler(auth *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{Auth: auth, SecureCookie: secureCookie}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signupReq struct {
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	Name            string `json:"name" validate:"max=200"`
	Phone           string `json:"phone" validate:"max=50"`
	PropertyID      string `json:"propertyId"`
	PropertyAddress string `json:"propertyAddress"`
	PropertyNumber  string `json:"propertyNumber"`
}

// sessionUser is the compact user shape returned by login.
type sessionUser struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	Name  string     `json:"name"`
}

type loginResp struct {
	Message string      `json:"message"`
	User    sessionUser `json:"user"`
}

type meResp struct {
	User            model.PublicUser `json:"user"`
	IsAuthenticated bool             `json:"isAuthenticated"`
}

type userResp struct {
	Message string            `json:"message"`
	User    *model.PublicUser `json:"user"`
}

type messageResp struct {
	Message string `json:"message"`
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	ck := &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge < 0 {
		ck.Expires = time.Unix(0, 0)
	}
	return ck
}

// Login: verify credentials for the claimed role and set the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password, req.Role, c.RealIP())
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(res.Token, int(utils.TokenTTL/time.Second)))
	return c.JSON(http.StatusOK, loginResp{
		Message: "Login successful",
		User:    sessionUser{ID: res.User.ID, Email: res.User.Email, Role: res.User.Role, Name: res.User.Name},
	})
}

// Logout: drop the session if there is one and clear the cookie. Always 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.CookieName); err == nil {
		h.Auth.Logout(c.Request().Context(), ck.Value)
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, messageResp{Message: "Logged out successfully"})
}

// Me: return the user resolved by the session middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, meResp{User: u, IsAuthenticated: true})
}

// Signup: member self-registration checked against property records.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.Auth.Signup(c.Request().Context(), service.SignupInput{
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		Name:            req.Name,
		Phone:           req.Phone,
		PropertyID:      req.PropertyID,
		PropertyAddress: req.PropertyAddress,
		PropertyNumber:  req.PropertyNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResp{Message: "Account created successfully", User: u})
}
