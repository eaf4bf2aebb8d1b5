package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"hub-route-service/internal/domain"
	"hub-route-service/internal/platform/obs"
	"hub-route-service/internal/ports"

	"github.com/google/uuid"
)

// RoleMaster is the elevated role required for destructive operations.
const RoleMaster = "MASTER"

// RouteService orchestrates the HubRoute lifecycle: resolution on create
// and end-hub change, soft deletion, and cache consistency.
//
// Cache rule: every write refreshes or evicts the by-id entry for the
// touched route and evicts all listings, because listing results are keyed
// by query parameters, not by route.
type RouteService struct {
	Routes   ports.HubRouteRepository
	Cache    ports.RouteCache
	Resolver *RouteResolver

	// Now stamps audit fields; defaults to time.Now.
	Now func() time.Time
}

func (s *RouteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateRoute resolves and persists a new route between two distinct hubs.
// Nothing is persisted when any leg computation fails.
func (s *RouteService) CreateRoute(ctx context.Context, startID, endID uuid.UUID, actor string) (_ *domain.HubRoute, err error) {
	defer obs.Time(ctx, "routes.Create")(&err)

	if startID == endID {
		return nil, fmt.Errorf("create route: %w: start and end hub must differ", domain.ErrInvalid)
	}

	start, end, err := s.Resolver.lookupPair(ctx, startID, endID)
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	resolved, err := s.Resolver.Resolve(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	now := s.now()
	route := &domain.HubRoute{
		RouteID:            uuid.New(),
		StartHubID:         start.HubID,
		EndHubID:           end.HubID,
		StartHubName:       start.Name,
		EndHubName:         end.Name,
		DistanceKm:         resolved.DistanceKm,
		EstimatedArrivalAt: resolved.EstimatedArrivalAt,
		CreatedAt:          now,
		CreatedBy:          actor,
		UpdatedAt:          now,
		UpdatedBy:          actor,
	}

	if err := s.Routes.SaveRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("create route: save: %w", err)
	}

	s.refreshCaches(ctx, route)
	return route, nil
}

// GetRoute returns one route, serving from cache when possible.
func (s *RouteService) GetRoute(ctx context.Context, id uuid.UUID) (_ *domain.HubRoute, err error) {
	defer obs.Time(ctx, "routes.Get")(&err)

	if route, ok := s.Cache.GetRoute(ctx, id); ok {
		return route, nil
	}

	route, err := s.Routes.GetRoute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}

	if err := s.Cache.PutRoute(ctx, route); err != nil {
		log.Printf("route cache write failed: route_id=%s err=%v", id, err)
	}
	return route, nil
}

// ListRoutes returns a keyword-filtered page of routes. Listings are cached
// per full parameter set and invalidated wholesale on any write.
func (s *RouteService) ListRoutes(ctx context.Context, keyword string, page, size int) (_ ports.RouteListing, err error) {
	defer obs.Time(ctx, "routes.List")(&err)

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	key := fmt.Sprintf("%s|%d|%d", keyword, page, size)
	if listing, ok := s.Cache.GetListing(ctx, key); ok {
		return listing, nil
	}

	listing, err := s.Routes.SearchRoutes(ctx, keyword, page, size)
	if err != nil {
		return ports.RouteListing{}, fmt.Errorf("list routes: %w", err)
	}

	if err := s.Cache.PutListing(ctx, key, listing); err != nil {
		log.Printf("listing cache write failed: key=%q err=%v", key, err)
	}
	return listing, nil
}

// UpdateRoute replaces the end hub when a new one is supplied, re-resolving
// the full route against the unchanged start hub.
func (s *RouteService) UpdateRoute(ctx context.Context, id uuid.UUID, newEndID *uuid.UUID, actor string) (_ *domain.HubRoute, err error) {
	defer obs.Time(ctx, "routes.Update")(&err)

	route, err := s.Routes.GetRoute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update route: %w", err)
	}

	if newEndID != nil {
		start, end, err := s.Resolver.lookupPair(ctx, route.StartHubID, *newEndID)
		if err != nil {
			return nil, fmt.Errorf("update route: %w", err)
		}

		resolved, err := s.Resolver.Resolve(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("update route: %w", err)
		}

		route.EndHubID = end.HubID
		route.EndHubName = end.Name
		route.DistanceKm = resolved.DistanceKm
		route.EstimatedArrivalAt = resolved.EstimatedArrivalAt
	}

	route.UpdatedAt = s.now()
	route.UpdatedBy = actor

	if err := s.Routes.SaveRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("update route: save: %w", err)
	}

	s.refreshCaches(ctx, route)
	return route, nil
}

// DeleteRoute soft-deletes a route. Only MASTER callers may delete; a route
// that is already deleted surfaces as not found.
func (s *RouteService) DeleteRoute(ctx context.Context, id uuid.UUID, actor, role string) (err error) {
	defer obs.Time(ctx, "routes.Delete")(&err)

	if role != RoleMaster {
		return fmt.Errorf("delete route: %w: requires role %s", domain.ErrForbidden, RoleMaster)
	}

	route, err := s.Routes.GetRoute(ctx, id)
	if err != nil {
		return fmt.Errorf("delete route: %w", err)
	}

	now := s.now()
	route.DeletedAt = &now
	route.DeletedBy = &actor
	route.UpdatedAt = now
	route.UpdatedBy = actor

	if err := s.Routes.SaveRoute(ctx, route); err != nil {
		return fmt.Errorf("delete route: save: %w", err)
	}

	if err := s.Cache.EvictRoute(ctx, id); err != nil {
		log.Printf("route cache evict failed: route_id=%s err=%v", id, err)
	}
	if err := s.Cache.EvictListings(ctx); err != nil {
		log.Printf("listing cache evict failed: err=%v", err)
	}
	return nil
}

// refreshCaches applies the write-path cache rule: refresh the by-id entry
// and drop every listing.
func (s *RouteService) refreshCaches(ctx context.Context, route *domain.HubRoute) {
	if err := s.Cache.PutRoute(ctx, route); err != nil {
		log.Printf("route cache write failed: route_id=%s err=%v", route.RouteID, err)
	}
	if err := s.Cache.EvictListings(ctx); err != nil {
		log.Printf("listing cache evict failed: err=%v", err)
	}
}
