package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
)

// queryInt reads a non-negative integer query parameter, returning def when
// it is absent.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return n, nil
}

// queryBool reads "true" or "false"; anything else is a 400. Absent yields
// nil.
func queryBool(c echo.Context, name string) (*bool, error) {
	switch c.QueryParam(name) {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, apperr.Validation("Invalid " + name)
}
