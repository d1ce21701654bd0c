package middleware_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/middleware"
	"github.com/localnerve/visionfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(passphrase string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var custom *types.CustomError
			if errors.As(err, &custom) {
				return c.Status(custom.Code).SendString(custom.Type)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(middleware.VersionMiddleware())
	app.Get("/admin", middleware.AuthAdmin(passphrase), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})
	return app
}

func TestAuthAdmin(t *testing.T) {
	app := newApp("open sesame")

	cases := map[string]struct {
		header string
		want   int
	}{
		"missing": {"", fiber.StatusForbidden},
		"wrong":   {"open barley", fiber.StatusForbidden},
		"correct": {"open sesame", fiber.StatusOK},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.header != "" {
				req.Header.Set(middleware.PassphraseHeader, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestAuthAdminEmptyPassphraseRejectsAll(t *testing.T) {
	app := newApp("")
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set(middleware.PassphraseHeader, "anything")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVersionMiddleware(t *testing.T) {
	app := newApp("pw")

	cases := map[string]struct {
		header     string
		wantStatus int
		wantBody   string
	}{
		"default":     {"", fiber.StatusOK, middleware.APIVersion},
		"major alias": {"1", fiber.StatusOK, middleware.APIVersion},
		"minor alias": {"1.0", fiber.StatusOK, middleware.APIVersion},
		"v prefix":    {"v1.0.0", fiber.StatusOK, middleware.APIVersion},
		"unsupported": {"2", fiber.StatusBadRequest, types.ErrorTypeVersion},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set(middleware.PassphraseHeader, "pw")
			if tc.header != "" {
				req.Header.Set(middleware.VersionHeader, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBody, string(body))
			if tc.wantStatus == fiber.StatusOK {
				assert.Equal(t, middleware.APIVersion, resp.Header.Get(middleware.VersionHeader))
			}
		})
	}
}
