package ports

import (
	"context"

	"hub-route-service/internal/domain"

	"github.com/google/uuid"
)

// Port: cache for resolved hub routes.
//
// Two entry families exist: single routes keyed by id, and listings keyed
// by their full query parameters. Listings are only invalidated wholesale
// because writes can move rows across pages and filters.
type RouteCache interface {
	GetRoute(ctx context.Context, id uuid.UUID) (*domain.HubRoute, bool)
	PutRoute(ctx context.Context, route *domain.HubRoute) error
	EvictRoute(ctx context.Context, id uuid.UUID) error

	GetListing(ctx context.Context, key string) (RouteListing, bool)
	PutListing(ctx context.Context, key string, listing RouteListing) error
	// Invalidate every cached listing at once.
	EvictListings(ctx context.Context) error
}
