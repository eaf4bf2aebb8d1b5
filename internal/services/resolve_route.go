package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hub-route-service/internal/domain"
	"hub-route-service/internal/platform/obs"
	"hub-route-service/internal/ports"

	"github.com/google/uuid"
)

// RouteResolver turns a (start hub, end hub) pair into one aggregated
// distance/arrival result.
//
// It classifies the pair against the fixed center topology, issues one
// oracle call per required leg, and sums the legs in raw units before a
// single conversion to the presentation result.
type RouteResolver struct {
	Hubs     ports.HubRepository
	Legs     ports.LegProvider
	Topology Topology

	// Now stamps the estimated arrival; defaults to time.Now.
	Now func() time.Time
}

// Resolve computes the full route between two hubs.
// If any leg fails, the whole resolution fails.
func (r *RouteResolver) Resolve(ctx context.Context, start, end *domain.Hub) (_ domain.ResolvedRoute, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	if start == nil || end == nil {
		return domain.ResolvedRoute{}, errors.New("resolve route: start and end hub must be non-nil")
	}

	// Center-to-center pairs are a single direct leg; the bridge topology
	// does not apply and no approach legs exist.
	if start.IsCenter && end.IsCenter {
		leg, err := r.Legs.ComputeLeg(ctx, start.Coords, end.Coords)
		if err != nil {
			return domain.ResolvedRoute{}, fmt.Errorf("resolve route: direct leg %q -> %q: %w", start.Name, end.Name, err)
		}
		return r.aggregate(leg), nil
	}

	startApproach, err := r.approachLeg(ctx, start)
	if err != nil {
		return domain.ResolvedRoute{}, fmt.Errorf("resolve route: start approach: %w", err)
	}
	endApproach, err := r.approachLeg(ctx, end)
	if err != nil {
		return domain.ResolvedRoute{}, fmt.Errorf("resolve route: end approach: %w", err)
	}

	legs := []domain.RouteLeg{startApproach, endApproach}

	plan := r.Topology.PlanBetween(start.Center(), end.Center())
	switch plan.Kind {
	case PlanSameCenter:
		// Both hubs funnel through the same center; no long-haul leg.

	case PlanOneHop:
		leg, err := r.centerLeg(ctx, start.Center(), end.Center())
		if err != nil {
			return domain.ResolvedRoute{}, fmt.Errorf("resolve route: inter-center leg: %w", err)
		}
		legs = append(legs, leg)

	case PlanTwoHop:
		bridge, err := r.Hubs.GetHubByID(ctx, plan.Via)
		if err != nil {
			return domain.ResolvedRoute{}, fmt.Errorf("resolve route: bridge center %s: %w", plan.Via, err)
		}

		toBridge, err := r.centerLeg(ctx, start.Center(), bridge)
		if err != nil {
			return domain.ResolvedRoute{}, fmt.Errorf("resolve route: leg to bridge: %w", err)
		}
		fromBridge, err := r.centerLeg(ctx, bridge, end.Center())
		if err != nil {
			return domain.ResolvedRoute{}, fmt.Errorf("resolve route: leg from bridge: %w", err)
		}
		legs = append(legs, toBridge, fromBridge)

	default:
		return domain.ResolvedRoute{}, fmt.Errorf("resolve route: unexpected plan kind %d", plan.Kind)
	}

	return r.aggregate(legs...), nil
}

// approachLeg returns a hub's leg to its assigned center, or a zero leg
// when the hub is itself a center.
func (r *RouteResolver) approachLeg(ctx context.Context, hub *domain.Hub) (domain.RouteLeg, error) {
	if hub.IsCenter {
		return domain.RouteLeg{}, nil
	}
	if hub.CenterHub == nil {
		return domain.RouteLeg{}, fmt.Errorf("hub %q has no assigned center hub", hub.Name)
	}

	leg, err := r.Legs.ComputeLeg(ctx, hub.Coords, hub.CenterHub.Coords)
	if err != nil {
		return domain.RouteLeg{}, fmt.Errorf("approach leg %q -> %q: %w", hub.Name, hub.CenterHub.Name, err)
	}
	return leg, nil
}

func (r *RouteResolver) centerLeg(ctx context.Context, from, to *domain.Hub) (domain.RouteLeg, error) {
	leg, err := r.Legs.ComputeLeg(ctx, from.Coords, to.Coords)
	if err != nil {
		return domain.RouteLeg{}, fmt.Errorf("center leg %q -> %q: %w", from.Name, to.Name, err)
	}
	return leg, nil
}

// aggregate sums legs in raw units and converts once: kilometers rounded
// half-up to two decimals, arrival stamped relative to now.
func (r *RouteResolver) aggregate(legs ...domain.RouteLeg) domain.ResolvedRoute {
	var total domain.RouteLeg
	for _, leg := range legs {
		total = total.Add(leg)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	return domain.ResolvedRoute{
		DistanceKm:         roundKm(total.DistanceMeters),
		EstimatedArrivalAt: now().Add(time.Duration(total.DurationSeconds) * time.Second),
	}
}

// roundKm converts meters to kilometers with half-up rounding at two
// decimals. Integer arithmetic avoids float representation drift
// (1235m -> 1.24, 1234m -> 1.23).
func roundKm(meters int) float64 {
	return float64((meters+5)/10) / 100
}

// lookupPair fetches both endpoint hubs for a resolution request.
func (r *RouteResolver) lookupPair(ctx context.Context, startID, endID uuid.UUID) (*domain.Hub, *domain.Hub, error) {
	start, err := r.Hubs.GetHubByID(ctx, startID)
	if err != nil {
		return nil, nil, fmt.Errorf("start hub %s: %w", startID, err)
	}
	end, err := r.Hubs.GetHubByID(ctx, endID)
	if err != nil {
		return nil, nil, fmt.Errorf("end hub %s: %w", endID, err)
	}
	return start, end, nil
}
