package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hub-route-service/internal/domain"
	"hub-route-service/internal/ports"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the HubRouteRepository port.
type PostgresRouteRepository struct{ DB *sql.DB }

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

// GetRoute returns one route. Soft-deleted rows surface as not found.
func (r *PostgresRouteRepository) GetRoute(ctx context.Context, id uuid.UUID) (*domain.HubRoute, error) {
	q := `
	SELECT
		route_id, start_hub_id, end_hub_id, start_hub_name, end_hub_name,
		distance_km, estimated_arrival_at,
		created_at, created_by, updated_at, updated_by
	FROM hub_routes
	WHERE route_id = $1 AND deleted_at IS NULL;
	`

	var route domain.HubRoute
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&route.RouteID, &route.StartHubID, &route.EndHubID,
		&route.StartHubName, &route.EndHubName,
		&route.DistanceKm, &route.EstimatedArrivalAt,
		&route.CreatedAt, &route.CreatedBy, &route.UpdatedAt, &route.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get route: %w: route %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get route %s: scan row: %w", id, err)
	}

	return &route, nil
}

// SaveRoute upserts a route row, including soft-delete markers.
func (r *PostgresRouteRepository) SaveRoute(ctx context.Context, route *domain.HubRoute) error {
	if route == nil {
		return errors.New("save route: route is nil")
	}

	q := `
	INSERT INTO hub_routes (
		route_id, start_hub_id, end_hub_id, start_hub_name, end_hub_name,
		distance_km, estimated_arrival_at,
		created_at, created_by, updated_at, updated_by, deleted_at, deleted_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (route_id) DO UPDATE
	SET end_hub_id = EXCLUDED.end_hub_id,
		end_hub_name = EXCLUDED.end_hub_name,
		distance_km = EXCLUDED.distance_km,
		estimated_arrival_at = EXCLUDED.estimated_arrival_at,
		updated_at = EXCLUDED.updated_at,
		updated_by = EXCLUDED.updated_by,
		deleted_at = EXCLUDED.deleted_at,
		deleted_by = EXCLUDED.deleted_by;
	`

	_, err := r.DB.ExecContext(ctx, q,
		route.RouteID, route.StartHubID, route.EndHubID,
		route.StartHubName, route.EndHubName,
		route.DistanceKm, route.EstimatedArrivalAt,
		route.CreatedAt, route.CreatedBy, route.UpdatedAt, route.UpdatedBy,
		route.DeletedAt, route.DeletedBy,
	)
	if err != nil {
		return fmt.Errorf("save route %s: %w", route.RouteID, err)
	}
	return nil
}

// SearchRoutes returns a keyword-filtered page of live routes, newest
// first. The keyword matches either denormalized hub name.
func (r *PostgresRouteRepository) SearchRoutes(ctx context.Context, keyword string, page, size int) (ports.RouteListing, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	keyword = strings.TrimSpace(keyword)

	where := `
	WHERE deleted_at IS NULL
		AND ($1 = '' OR start_hub_name ILIKE '%' || $1 || '%' OR end_hub_name ILIKE '%' || $1 || '%')
	`

	var total int
	countQ := `SELECT COUNT(*) FROM hub_routes ` + where + `;`
	if err := r.DB.QueryRowContext(ctx, countQ, keyword).Scan(&total); err != nil {
		return ports.RouteListing{}, fmt.Errorf("search routes: count: %w", err)
	}

	q := `
	SELECT
		route_id, start_hub_id, end_hub_id, start_hub_name, end_hub_name,
		distance_km, estimated_arrival_at,
		created_at, created_by, updated_at, updated_by
	FROM hub_routes
	` + where + `
	ORDER BY created_at DESC, route_id
	LIMIT $2 OFFSET $3;
	`

	rows, err := r.DB.QueryContext(ctx, q, keyword, size, (page-1)*size)
	if err != nil {
		return ports.RouteListing{}, fmt.Errorf("search routes: query hub_routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.HubRoute, 0, size)
	for rows.Next() {
		var route domain.HubRoute
		err := rows.Scan(
			&route.RouteID, &route.StartHubID, &route.EndHubID,
			&route.StartHubName, &route.EndHubName,
			&route.DistanceKm, &route.EstimatedArrivalAt,
			&route.CreatedAt, &route.CreatedBy, &route.UpdatedAt, &route.UpdatedBy,
		)
		if err != nil {
			return ports.RouteListing{}, fmt.Errorf("search routes: scan row: %w", err)
		}
		routes = append(routes, &route)
	}
	if err := rows.Err(); err != nil {
		return ports.RouteListing{}, fmt.Errorf("search routes: row iteration: %w", err)
	}

	return ports.RouteListing{Routes: routes, Total: total, Page: page, Size: size}, nil
}
