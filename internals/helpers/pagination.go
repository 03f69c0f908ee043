package helper

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 1_000_000
)

type Paging struct {
	Page   int
	Limit  int
	Offset int
}

// ResolvePaging reads ?page= & ?limit= and normalizes them.
func ResolvePaging(c *fiber.Ctx) Paging {
	return NewPaging(
		atoiDefault(c.Query("page"), DefaultPage),
		atoiDefault(c.Query("limit"), DefaultLimit),
	)
}

func NewPaging(page, limit int) Paging {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Paging{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// TotalPages = ceil(total/limit); zero rows means zero pages.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func BuildPagination(total int64, p Paging) Pagination {
	return Pagination{
		Total:       total,
		TotalPages:  TotalPages(total, p.Limit),
		CurrentPage: p.Page,
		Limit:       p.Limit,
	}
}

/* ===============================
   Query filter parsing
=================================*/

// QueryString returns a trimmed query value or nil when absent/blank.
func QueryString(c *fiber.Ctx, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

// QueryUint returns nil when absent, a validation error when malformed.
func QueryUint(c *fiber.Ctx, key string) (*uint, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return nil, NewValidationError(key + " must be a positive integer")
	}
	u := uint(n)
	return &u, nil
}

// QueryBool accepts true/false/1/0.
func QueryBool(c *fiber.Ctx, key string) (*bool, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, NewValidationError(key + " must be true or false")
	}
	return &b, nil
}

// ParamID parses a positive integer route param.
func ParamID(c *fiber.Ctx, key string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(c.Params(key)), 10, 64)
	if err != nil || n == 0 {
		return 0, NewValidationError("Invalid " + key)
	}
	return uint(n), nil
}

// LikeContains builds a substring pattern for LOWER(col) LIKE ?.
func LikeContains(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
