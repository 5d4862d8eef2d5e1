package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kampusku_backend/internals/databases/gateway"
)

func TestBuildPaginationFromPage(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		perPage   int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"first of many", 45, 1, 20, 3, true, false},
		{"middle", 45, 2, 20, 3, true, true},
		{"last", 45, 3, 20, 3, false, true},
		{"empty result still one page", 0, 1, 20, 1, false, false},
		{"exact boundary", 40, 2, 20, 2, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPaginationFromPage(tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
		})
	}
}

func TestResolvePagingDefaultsAndClamp(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := ResolvePaging(c, 20, 100)
		return c.JSON(fiber.Map{"page": p.Page, "per_page": p.PerPage, "offset": p.Offset})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items?page=3&per_page=500", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"per_page":100`)
	assert.Contains(t, string(body), `"offset":200`)

	resp, err = app.Test(httptest.NewRequest("GET", "/items?page=-1", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"page":1`)
}

func TestJsonStoreErrorPreservesDiagnostics(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		se := &gateway.StoreError{
			Label:   "attendance:insert",
			Message: "duplicate key value violates unique constraint",
			Code:    "23505",
			Details: "Key (session_id, student_id) already exists.",
			Hint:    "use upsert",
		}
		return JsonStoreError(c, "Gagal menyimpan", se)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	assert.Contains(t, s, "23505")
	assert.Contains(t, s, "already exists")
	assert.Contains(t, s, "use upsert")
}

func TestJsonStoreErrorPolicyViolationIs403(t *testing.T) {
	app := fiber.New()
	app.Get("/denied", func(c *fiber.Ctx) error {
		se := &gateway.StoreError{
			Label:   "profiles:list",
			Message: "new row violates row-level security policy",
			Code:    "42501",
		}
		return JsonStoreError(c, "Gagal memuat", se)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/denied", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Row Level Security")
}

func TestJsonStoreErrorPlainError(t *testing.T) {
	app := fiber.New()
	app.Get("/plain", func(c *fiber.Ctx) error {
		return JsonStoreError(c, "Gagal", errors.New("connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestValidationMap(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Role  string `validate:"required,oneof=admin faculty student"`
	}
	v := validator.New()
	err := v.Struct(payload{Email: "not-an-email", Role: "owner"})
	require.Error(t, err)

	m := ValidationMap(err)
	assert.Contains(t, m, "email")
	assert.Contains(t, m, "role")
	assert.Contains(t, m["role"][0], "oneof")
}

func TestValidationMapNonValidatorError(t *testing.T) {
	m := ValidationMap(errors.New("something else"))
	require.Contains(t, m, "_")
	assert.Equal(t, "something else", m["_"][0])
}
