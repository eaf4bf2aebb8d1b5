package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hub-route-service/internal/domain"
)

// SQLLegCache is a SQL-backed cache of oracle legs keyed by coordinate
// pair. Hub coordinates are immutable to this service, so entries never go
// stale.
type SQLLegCache struct {
	DB *sql.DB
}

func NewSQLLegCache(db *sql.DB) *SQLLegCache {
	return &SQLLegCache{DB: db}
}

// Get fetches one cached leg. A miss is (zero, false, nil).
func (s *SQLLegCache) Get(ctx context.Context, origin, destination string) (domain.RouteLeg, bool, error) {
	if s.DB == nil {
		return domain.RouteLeg{}, false, errors.New("leg cache: db is nil")
	}
	if origin == "" || destination == "" {
		return domain.RouteLeg{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds
	FROM leg_cache
	WHERE origin = $1 AND destination = $2;
	`

	var leg domain.RouteLeg
	err := s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&leg.DistanceMeters, &leg.DurationSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RouteLeg{}, false, nil
	}
	if err != nil {
		return domain.RouteLeg{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	return leg, true, nil
}

// Put stores one leg, replacing any previous entry for the pair.
func (s *SQLLegCache) Put(ctx context.Context, origin, destination string, leg domain.RouteLeg) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}
	if origin == "" || destination == "" {
		return errors.New("insert leg cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO leg_cache (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, leg.DistanceMeters, leg.DurationSeconds); err != nil {
		return fmt.Errorf("insert leg cache %q -> %q: %w", origin, destination, err)
	}
	return nil
}
