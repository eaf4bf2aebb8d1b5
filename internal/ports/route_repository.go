package ports

import (
	"context"

	"hub-route-service/internal/domain"

	"github.com/google/uuid"
)

// One page of hub-route search results.
type RouteListing struct {
	Routes []*domain.HubRoute
	Total  int
	Page   int
	Size   int
}

// Port: a boundary for persisting HubRoute entities.
type HubRouteRepository interface {
	// Retrieve a route by id. Soft-deleted routes are not returned.
	GetRoute(ctx context.Context, id uuid.UUID) (*domain.HubRoute, error)
	// Insert or update a route row, including soft-delete markers.
	SaveRoute(ctx context.Context, route *domain.HubRoute) error
	// Keyword-filtered, paginated listing over denormalized hub names.
	SearchRoutes(ctx context.Context, keyword string, page, size int) (RouteListing, error)
}
