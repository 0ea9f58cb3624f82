package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxylyfe/portal/internal/config"
	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/middleware"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/seed"
)

type testServer struct {
	t   *testing.T
	app *App
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	log, _ := test.NewNullLogger()
	a, err := New(Deps{
		Config: config.Config{Env: "test", JWTSecret: "test-secret", BcryptCost: 4},
		Store:  docstore.NewMemory(),
		Log:    log,
	})
	require.NoError(t, err)
	require.NoError(t, seed.Run(context.Background(), a.Repos, seed.Options{
		SuperAdminEmail: "superadmin@luxylyfe.com", SuperAdminPassword: "superadmin123",
		AdminEmail: "admin@luxylyfe.com", AdminPassword: "admin123",
		MemberEmail: "member@luxylyfe.com", MemberPassword: "member123",
		Cost: 4,
	}, log))
	return &testServer{t: t, app: a}
}

func (s *testServer) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.app.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, password, role string) *http.Cookie {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password, "role": role}, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	s.t.Fatal("no session cookie")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decode(t, rec)["error"].(string)
	return msg
}

func TestLoginThenMe(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "member@luxylyfe.com", "password": "member123", "role": "MEMBER"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "MEMBER", user["role"])
	assert.NotContains(t, user, "password")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 86400, cookie.MaxAge)

	me := s.do(http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code)
	meBody := decode(t, me)
	assert.Equal(t, true, meBody["isAuthenticated"])
	assert.Equal(t, user["id"], meBody["user"].(map[string]any)["id"])
}

func TestLogin_GenericFailure(t *testing.T) {
	s := newServer(t)
	wrongRole := s.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "member@luxylyfe.com", "password": "member123", "role": "ADMIN"}, nil)
	wrongPassword := s.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "member@luxylyfe.com", "password": "nope", "role": "MEMBER"}, nil)
	for _, rec := range []*httptest.ResponseRecorder{wrongRole, wrongPassword} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", errorOf(t, rec))
	}

	missing := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "member@luxylyfe.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, "Email, password, and role are required", errorOf(t, missing))
}

func TestStrictBodyRejectsUnknownFields(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodPost, "/api/auth/login",
		`{"email":"member@luxylyfe.com","password":"member123","role":"MEMBER","remember":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "unknown field")
}

func TestMeWithoutSession(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", errorOf(t, rec))
}

func TestLogoutIsIdempotentAndInvalidatesToken(t *testing.T) {
	s := newServer(t)
	cookie := s.login("member@luxylyfe.com", "member123", "MEMBER")

	rec := s.do(http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Equal(t, "", cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/auth/logout", nil, cookie).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/auth/logout", nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", nil, cookie).Code)
}

func TestScheduleViewingRequiresDateAndWindow(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodPost, "/api/requests", map[string]string{
		"type": "SCHEDULE_VIEWING", "name": "Ada", "email": "ada@example.com", "phone": "555-0100",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields for scheduling", errorOf(t, rec))

	rec = s.do(http.MethodPost, "/api/requests", map[string]string{
		"type": "SCHEDULE_VIEWING", "name": "Ada", "email": "ada@example.com", "phone": "555-0100",
		"preferredDate": "2026-11-02", "timeWindow": "morning",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "PENDING", decode(t, rec)["request"].(map[string]any)["status"])
}

func TestRequestInboxRequiresStaff(t *testing.T) {
	s := newServer(t)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/requests", nil, nil).Code)

	member := s.login("member@luxylyfe.com", "member123", "MEMBER")
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/requests", nil, member).Code)

	rec := s.do(http.MethodPost, "/api/requests", map[string]string{
		"type": "CONTACT_US", "name": "Ada", "email": "ada@example.com", "phone": "555-0100", "message": "Hello",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["request"].(map[string]any)["id"].(string)

	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")
	list := s.do(http.MethodGet, "/api/requests?status=PENDING&limit=10", nil, admin)
	require.Equal(t, http.StatusOK, list.Code)
	body := decode(t, list)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(10), body["limit"])

	patch := s.do(http.MethodPatch, "/api/requests/"+id, map[string]string{"status": "COMPLETED"}, admin)
	require.Equal(t, http.StatusOK, patch.Code)
	patch = s.do(http.MethodPatch, "/api/requests/"+id, map[string]string{"status": "PENDING"}, admin)
	require.Equal(t, http.StatusOK, patch.Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/requests/"+id, nil, admin).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/requests/"+id, nil, admin).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/requests?limit=-1", nil, admin).Code)
}

func TestUserManagementIsSuperadminOnly(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")
	rec := s.do(http.MethodPost, "/api/admin/users",
		map[string]string{"email": "new@luxylyfe.com", "password": "secret1", "role": "ADMIN", "name": "New"}, admin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Insufficient permissions", errorOf(t, rec))

	root := s.login("superadmin@luxylyfe.com", "superadmin123", "SUPERADMIN")
	rec = s.do(http.MethodPost, "/api/admin/users",
		map[string]string{"email": "new@luxylyfe.com", "password": "secret1", "role": "ADMIN", "name": "New"}, root)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/admin/users",
		map[string]string{"email": "NEW@luxylyfe.com", "password": "secret1", "role": "ADMIN", "name": "Dup"}, root)
	assert.Equal(t, http.StatusConflict, rec.Code)

	list := s.do(http.MethodGet, "/api/admin/users", nil, root)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Len(t, decode(t, list)["users"], 4)
	assert.NotContains(t, list.Body.String(), "password")
}

func TestSuperadminCannotDeleteSelf(t *testing.T) {
	s := newServer(t)
	root := s.login("superadmin@luxylyfe.com", "superadmin123", "SUPERADMIN")
	me := decode(t, s.do(http.MethodGet, "/api/auth/me", nil, root))["user"].(map[string]any)

	rec := s.do(http.MethodDelete, "/api/admin/users/"+me["id"].(string), nil, root)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete your own account", errorOf(t, rec))
}

func TestDeletingUserEndsTheirSessions(t *testing.T) {
	s := newServer(t)
	member := s.login("member@luxylyfe.com", "member123", "MEMBER")
	memberID := decode(t, s.do(http.MethodGet, "/api/auth/me", nil, member))["user"].(map[string]any)["id"].(string)

	root := s.login("superadmin@luxylyfe.com", "superadmin123", "SUPERADMIN")
	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/admin/users/"+memberID, nil, root).Code)

	n, err := s.app.Repos.Sessions.Count(context.Background(), repository.SessionWhere{UserID: memberID})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", nil, member).Code)
}

func TestResetPassword(t *testing.T) {
	s := newServer(t)
	root := s.login("superadmin@luxylyfe.com", "superadmin123", "SUPERADMIN")
	users := decode(t, s.do(http.MethodGet, "/api/admin/users", nil, root))["users"].([]any)
	var adminID string
	for _, u := range users {
		if m := u.(map[string]any); m["role"] == "ADMIN" {
			adminID = m["id"].(string)
		}
	}
	require.NotEmpty(t, adminID)

	rec := s.do(http.MethodPost, "/api/admin/users/"+adminID+"/reset-password", map[string]string{"newPassword": "123"}, root)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodPost, "/api/admin/users/"+adminID+"/reset-password", map[string]string{"newPassword": "changed1"}, root)
	require.Equal(t, http.StatusOK, rec.Code)
	s.login("admin@luxylyfe.com", "changed1", "ADMIN")
}

func TestSignupAgainstPropertyRecords(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")
	rec := s.do(http.MethodPost, "/api/properties", map[string]any{
		"propertyId": "LL-0002", "title": "Hillside Estate", "address": "9 Canyon Road",
		"propertyType": "HOUSE", "email": "owner2@example.com", "phone": "(310) 555-0142",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	form := map[string]string{
		"email": "owner2@example.com", "password": "secret1", "role": "MEMBER", "name": "Owner Two",
		"phone": "310.555.0142", "propertyId": "LL-0002", "propertyAddress": "9 canyon road", "propertyNumber": "A",
	}
	form["phone"] = "310.555.0199"
	rec = s.do(http.MethodPost, "/api/auth/signup", form, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone number does not match property records", errorOf(t, rec))

	form["phone"] = "310.555.0142"
	rec = s.do(http.MethodPost, "/api/auth/signup", form, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/auth/signup", form, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	s.login("owner2@example.com", "secret1", "MEMBER")
}

func TestPropertiesHideOwnerContactPublicly(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodGet, "/api/properties?featured=true", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	props := decode(t, rec)["properties"].([]any)
	require.Len(t, props, 1)
	p := props[0].(map[string]any)
	assert.Equal(t, "LL-0001", p["propertyId"])
	assert.NotContains(t, p, "email")
	assert.NotContains(t, p, "phone")

	byBusinessKey := s.do(http.MethodGet, "/api/properties/LL-0001", nil, nil)
	assert.Equal(t, http.StatusOK, byBusinessKey.Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/properties/LL-9999", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/properties?type=CASTLE", nil, nil).Code)

	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")
	dup := s.do(http.MethodPost, "/api/properties", map[string]any{
		"propertyId": "LL-0001", "title": "Dup", "address": "x", "propertyType": "LAND",
	}, admin)
	assert.Equal(t, http.StatusConflict, dup.Code)
}

func TestPropertyIDMustNotBeBlank(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")

	rec := s.do(http.MethodPost, "/api/properties", map[string]any{
		"propertyId": "   ", "title": "Blank", "address": "1 Nowhere", "propertyType": "LAND",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "propertyId is required", errorOf(t, rec))

	rec = s.do(http.MethodPut, "/api/properties/LL-0001", map[string]any{"propertyId": " "}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "propertyId is required", errorOf(t, rec))

	rec = s.do(http.MethodPost, "/api/settings", map[string]any{
		"key": "  ", "value": "x", "dataType": "string",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/properties/LL-0001", nil, nil).Code)
}

func TestContentVisibility(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")

	for i, active := range []bool{true, false} {
		rec := s.do(http.MethodPost, "/api/content", map[string]any{
			"pageType": "HOME", "sectionType": "HERO", "title": "Block", "order": i, "isActive": active,
		}, admin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	bad := s.do(http.MethodPost, "/api/content", map[string]any{"pageType": "BLOG", "sectionType": "HERO"}, admin)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	public := decode(t, s.do(http.MethodGet, "/api/content?pageType=HOME", nil, nil))["content"].([]any)
	assert.Len(t, public, 1)

	all := decode(t, s.do(http.MethodGet, "/api/admin/content?pageType=HOME", nil, admin))["content"].([]any)
	require.Len(t, all, 2)
	first := all[0].(map[string]any)
	assert.Equal(t, float64(0), first["order"])
	assert.NotEmpty(t, first["createdBy"])

	id := first["id"].(string)
	rec := s.do(http.MethodPut, "/api/content/"+id, map[string]any{"isActive": false}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	public = decode(t, s.do(http.MethodGet, "/api/content?pageType=HOME", nil, nil))["content"].([]any)
	assert.Empty(t, public)

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/content/"+id, nil, admin).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/content/"+id, nil, admin).Code)
}

func TestSettingsTypedValues(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")

	rec := s.do(http.MethodPost, "/api/settings",
		map[string]any{"key": "max_guests", "value": "lots", "dataType": "number", "isPublic": true}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/settings",
		map[string]any{"key": "max_guests", "value": "12", "dataType": "number", "isPublic": true}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/api/settings",
		map[string]any{"key": "smtp_host", "value": "mail.internal", "isPublic": false}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/api/settings", map[string]any{"key": "smtp_host", "value": "x"}, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	public := decode(t, s.do(http.MethodGet, "/api/settings", nil, nil))["settings"].([]any)
	require.Len(t, public, 1)
	assert.Equal(t, float64(12), public[0].(map[string]any)["parsedValue"])

	rec = s.do(http.MethodPut, "/api/settings/max_guests", map[string]any{"dataType": "boolean"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodPut, "/api/settings/max_guests", map[string]any{"value": "20"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	all := decode(t, s.do(http.MethodGet, "/api/admin/settings", nil, admin))["settings"].([]any)
	require.Len(t, all, 2)
	assert.Equal(t, "max_guests", all[0].(map[string]any)["key"])

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/settings/smtp_host", nil, admin).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/settings/smtp_host", nil, admin).Code)
}

func TestStats(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin@luxylyfe.com", "admin123", "ADMIN")
	rec := s.do(http.MethodGet, "/api/admin/stats", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	users := body["users"].(map[string]any)
	assert.Equal(t, float64(3), users["total"])
	assert.Equal(t, float64(1), users["MEMBER"])
	assert.Equal(t, float64(1), body["properties"].(map[string]any)["featured"])
}

func TestProbesAndUnknownRoutes(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/nothing-here", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
