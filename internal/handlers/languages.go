package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gwodu/VoiceDub/internal/languages"
)

// Languages returns the supported language catalog for the client UI.
func Languages(c *fiber.Ctx) error {
	return c.JSON(languages.Supported())
}
