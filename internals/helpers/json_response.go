// file: internals/helpers/json_response.go
package helper

import (
	"errors"
	"reflect"
	"strings"

	"certihub_backend/internals/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

/* ===============================
   Response shapes
=================================*/

type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

type ListData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type ErrorResponse struct {
	Title      string            `json:"title"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Error      string            `json:"error,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

/* ===============================
   Success helpers
=================================*/

func jsonSuccess(c *fiber.Ctx, status int, title string, data any) error {
	if strings.TrimSpace(title) == "" {
		title = "ok"
	}
	return c.Status(status).JSON(fiber.Map{
		"title":      title,
		"statusCode": status,
		"data":       data,
	})
}

// JsonOK: GET detail etc.
func JsonOK(c *fiber.Ctx, title string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, title, data)
}

// JsonCreated: POST
func JsonCreated(c *fiber.Ctx, title string, data any) error {
	return jsonSuccess(c, fiber.StatusCreated, title, data)
}

// JsonUpdated: PUT/PATCH
func JsonUpdated(c *fiber.Ctx, title string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, title, data)
}

// JsonDeleted: DELETE
func JsonDeleted(c *fiber.Ctx, title string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, title, data)
}

// JsonList wraps items + pagination under data.
func JsonList(c *fiber.Ctx, title string, items any, p Pagination) error {
	return jsonSuccess(c, fiber.StatusOK, title, ListData{
		Items:      nonNilSlice(items),
		Pagination: p,
	})
}

func nonNilSlice(v any) any {
	if v == nil {
		return []any{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}
	return v
}

/* ===============================
   Error helper
=================================*/

// JsonError renders any error in the {title, statusCode, message} shape.
// Internal errors only expose their cause in development.
func JsonError(c *fiber.Ctx, err error) error {
	if err == nil {
		err = NewInternalError(nil)
	}

	kind := KindOf(err)
	status := kind.Status()
	resp := ErrorResponse{
		Title:      kind.Title(),
		StatusCode: status,
		Message:    err.Error(),
	}

	var ae *AppError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		resp.Title = ae.ResponseTitle()
		resp.Message = ae.Message
		resp.Errors = ae.Fields
		if resp.Message == "" {
			resp.Message = kind.Title()
		}
	case errors.As(err, &fe):
		if fe.Code >= 400 && fe.Code < 500 {
			status = fe.Code
			resp.StatusCode = fe.Code
		}
		resp.Message = fe.Message
	}

	if status >= 500 {
		log.Error().Err(err).Str("path", c.Path()).Msg("[HTTP] internal error")
		if kind == KindInternal {
			resp.Message = "Internal server error"
		}
		if configs.IsDevelopment() {
			resp.Error = err.Error()
		}
	}

	return c.Status(status).JSON(resp)
}
