package admin

import (
	"github.com/mobipos/mobipos/internal/provider"
)

// Handler serves the owner-facing management API
type Handler struct {
	*provider.Container
}

// New creates the admin handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
