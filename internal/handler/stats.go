package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
)

// StatsHandler reports entity counts for the admin dashboard.
type StatsHandler struct {
	Repos *repository.Repositories
}

func NewStatsHandler(repos *repository.Repositories) *StatsHandler {
	return &StatsHandler{Repos: repos}
}

type statsResp struct {
	Users      map[string]int `json:"users"`
	Properties map[string]int `json:"properties"`
	Requests   map[string]int `json:"requests"`
	Content    map[string]int `json:"content"`
	Settings   map[string]int `json:"settings"`
}

// Stats: GET /api/admin/stats
func (h *StatsHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	yes := true
	var (
		resp = statsResp{
			Users:      map[string]int{},
			Properties: map[string]int{},
			Requests:   map[string]int{},
			Content:    map[string]int{},
			Settings:   map[string]int{},
		}
		n   int
		err error
	)
	count := func(dst map[string]int, key string, f func() (int, error)) {
		if err != nil {
			return
		}
		n, err = f()
		dst[key] = n
	}

	count(resp.Users, "total", func() (int, error) { return h.Repos.Users.Count(ctx, repository.UserWhere{}) })
	for _, r := range []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleMember} {
		role := r
		count(resp.Users, string(role), func() (int, error) { return h.Repos.Users.Count(ctx, repository.UserWhere{Role: role}) })
	}
	count(resp.Properties, "total", func() (int, error) { return h.Repos.Properties.Count(ctx, repository.PropertyWhere{}) })
	count(resp.Properties, "available", func() (int, error) {
		return h.Repos.Properties.Count(ctx, repository.PropertyWhere{IsAvailable: &yes})
	})
	count(resp.Properties, "featured", func() (int, error) {
		return h.Repos.Properties.Count(ctx, repository.PropertyWhere{IsFeature: &yes})
	})
	count(resp.Requests, "total", func() (int, error) { return h.Repos.Requests.Count(ctx, repository.RequestWhere{}) })
	for _, s := range []model.RequestStatus{model.StatusPending, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled} {
		status := s
		count(resp.Requests, string(status), func() (int, error) {
			return h.Repos.Requests.Count(ctx, repository.RequestWhere{Status: status})
		})
	}
	count(resp.Content, "total", func() (int, error) { return h.Repos.Content.Count(ctx, repository.PageContentWhere{}) })
	count(resp.Content, "active", func() (int, error) {
		return h.Repos.Content.Count(ctx, repository.PageContentWhere{IsActive: &yes})
	})
	count(resp.Settings, "total", func() (int, error) { return h.Repos.Settings.Count(ctx, repository.SiteSettingWhere{}) })
	count(resp.Settings, "public", func() (int, error) {
		return h.Repos.Settings.Count(ctx, repository.SiteSettingWhere{IsPublic: &yes})
	})
	if err != nil {
		return apperr.Internal(apperr.MsgInternal, err)
	}
	return c.JSON(http.StatusOK, resp)
}
