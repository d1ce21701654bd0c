package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/types"
)

// PassphraseHeader carries the admin passphrase
const PassphraseHeader = "X-Admin-Passphrase"

// AuthAdmin admits requests that present the configured passphrase. There
// are no sessions; every admin request carries it.
func AuthAdmin(passphrase string) fiber.Handler {
	expected := []byte(passphrase)
	return func(c *fiber.Ctx) error {
		presented := c.Get(PassphraseHeader)
		if presented == "" {
			return types.NewCustomError(fiber.StatusForbidden, types.ErrorTypeAdminAuth,
				"Admin passphrase header \""+PassphraseHeader+"\" not found", nil)
		}

		if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			return types.NewCustomError(fiber.StatusForbidden, types.ErrorTypeAdminAuth, "Invalid admin passphrase", nil)
		}

		c.Locals("admin", true)
		return c.Next()
	}
}
