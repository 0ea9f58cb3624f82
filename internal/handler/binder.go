package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
)

// StrictBinder decodes JSON request bodies and rejects unknown fields and
// trailing data. An empty body leaves the target untouched so the service
// layer reports missing fields with its own messages.
type StrictBinder struct{}

func (StrictBinder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Validation("Invalid request body: " + strings.TrimPrefix(err.Error(), "json: "))
	}
	if dec.More() {
		return apperr.Validation("Invalid request body: unexpected data after JSON object")
	}
	return nil
}

// Validator runs go-playground struct tag validation. Field names in
// messages are the JSON names.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required", "notblank":
			return apperr.Validation(fmt.Sprintf("%s is required", fe.Field()))
		}
		return apperr.Validation(fmt.Sprintf("Invalid value for %s", fe.Field()))
	}
	return apperr.Validation("Invalid request body")
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
