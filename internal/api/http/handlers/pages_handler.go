package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// PagesHandler serves the fixed HTML pages from the public directory.
type PagesHandler struct {
	publicDir string
}

// NewPagesHandler constructs the handler.
func NewPagesHandler(publicDir string) *PagesHandler {
	return &PagesHandler{publicDir: publicDir}
}

// Privacy GET /privacy.
func (h *PagesHandler) Privacy(c *fiber.Ctx) error {
	return c.SendFile(filepath.Join(h.publicDir, "privacy.html"))
}

// Terms GET /terms.
func (h *PagesHandler) Terms(c *fiber.Ctx) error {
	return c.SendFile(filepath.Join(h.publicDir, "terms.html"))
}

// Admin GET /admin serves the dashboard shell.
func (h *PagesHandler) Admin(c *fiber.Ctx) error {
	return c.SendFile(filepath.Join(h.publicDir, "admin.html"))
}
