package pos

import "github.com/mobipos/mobipos/internal/provider"

// Handler serves the till-facing API: auth, cart, checkout, sales
// and the dashboard. Both owners and workers use it.
type Handler struct {
	*provider.Container
}

// New creates the till handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
