package public

import (
	"log"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/sngm3741/restaurant-directory/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger      *log.Logger
	restaurants publicapp.RestaurantQueryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      *log.Logger
	Restaurants publicapp.RestaurantQueryService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:      cfg.Logger,
		restaurants: cfg.Restaurants,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/restaurant", h.restaurantListHandler())
	r.Get("/api/restaurant/search", h.restaurantSearchHandler())
	r.Get("/api/restaurant/id/{restaurantId}", h.restaurantByBusinessIDHandler())
	r.Get("/api/restaurant/{id}", h.restaurantDetailHandler())
}
