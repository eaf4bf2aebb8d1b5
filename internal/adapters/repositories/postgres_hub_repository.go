package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hub-route-service/internal/domain"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the HubRepository port.
// Hub records are read-only to this service; seeding happens via dbtool.
type PostgresHubRepository struct{ DB *sql.DB }

func NewPostgresHubRepository(db *sql.DB) *PostgresHubRepository {
	return &PostgresHubRepository{DB: db}
}

const hubSelect = `
SELECT
	h.hub_id, h.name, h.lon, h.lat, h.is_center,
	c.hub_id, c.name, c.lon, c.lat, c.is_center
FROM hubs h
LEFT JOIN hubs c ON h.center_hub_id = c.hub_id
`

// GetHubByID returns a hub with its assigned center hub populated.
func (r *PostgresHubRepository) GetHubByID(ctx context.Context, id uuid.UUID) (*domain.Hub, error) {
	row := r.DB.QueryRowContext(ctx, hubSelect+`WHERE h.hub_id = $1;`, id)

	hub, err := scanHub(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get hub: %w: hub %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get hub %s: %w", id, err)
	}
	return hub, nil
}

// GetHubByName returns a hub by its display name.
func (r *PostgresHubRepository) GetHubByName(ctx context.Context, name string) (*domain.Hub, error) {
	row := r.DB.QueryRowContext(ctx, hubSelect+`WHERE h.name = $1;`, name)

	hub, err := scanHub(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get hub: %w: hub named %q", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get hub %q: %w", name, err)
	}
	return hub, nil
}

func scanHub(row *sql.Row) (*domain.Hub, error) {
	var hub domain.Hub
	var (
		centerID   uuid.NullUUID
		centerName sql.NullString
		centerLon  sql.NullFloat64
		centerLat  sql.NullFloat64
		centerFlag sql.NullBool
	)

	err := row.Scan(
		&hub.HubID, &hub.Name, &hub.Coords.Lon, &hub.Coords.Lat, &hub.IsCenter,
		&centerID, &centerName, &centerLon, &centerLat, &centerFlag,
	)
	if err != nil {
		return nil, err
	}

	if centerID.Valid {
		hub.CenterHub = &domain.Hub{
			HubID:    centerID.UUID,
			Name:     centerName.String,
			Coords:   domain.Coordinates{Lon: centerLon.Float64, Lat: centerLat.Float64},
			IsCenter: centerFlag.Bool,
		}
	}
	return &hub, nil
}
