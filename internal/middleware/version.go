package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/types"
)

// VersionHeader selects the API version
const VersionHeader = "X-Api-Version"

// APIVersion is the only version served
const APIVersion = "1.0.0"

// VersionMiddleware resolves the X-Api-Version header, stores it in context
// and echoes it back. A missing header means the current version.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := c.Get(VersionHeader)
		version, ok := resolveVersion(requested)
		if !ok {
			return types.NewCustomError(fiber.StatusBadRequest, types.ErrorTypeVersion,
				"Unsupported API version \""+requested+"\"", nil)
		}

		c.Locals("apiVersion", version)
		c.Set(VersionHeader, version)

		return c.Next()
	}
}

// resolveVersion accepts aliases of 1.0.0 with or without a leading v
func resolveVersion(v string) (string, bool) {
	switch strings.TrimPrefix(strings.TrimSpace(v), "v") {
	case "", "1", "1.0", APIVersion:
		return APIVersion, true
	}
	return "", false
}
