package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHubsQuery := `
	CREATE TABLE IF NOT EXISTS hubs (
		hub_id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		is_center BOOLEAN NOT NULL DEFAULT FALSE,
		center_hub_id UUID REFERENCES hubs(hub_id)
	);
	`

	createHubRoutesQuery := `
	CREATE TABLE IF NOT EXISTS hub_routes (
		route_id UUID PRIMARY KEY,
		start_hub_id UUID NOT NULL REFERENCES hubs(hub_id),
		end_hub_id UUID NOT NULL REFERENCES hubs(hub_id),
		start_hub_name TEXT NOT NULL,
		end_hub_name TEXT NOT NULL,
		distance_km NUMERIC(5, 2) NOT NULL,
		estimated_arrival_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		created_by TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		updated_by TEXT NOT NULL,
		deleted_at TIMESTAMPTZ,
		deleted_by TEXT
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_hub_routes_names
	ON hub_routes(start_hub_name, end_hub_name)
	WHERE deleted_at IS NULL;
	`

	statements := []string{
		createHubsQuery,
		createHubRoutesQuery,
		createLegCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type HubSeed struct {
	HubID       uuid.UUID  `json:"hub_id"`
	Name        string     `json:"name"`
	Lon         float64    `json:"lon"`
	Lat         float64    `json:"lat"`
	IsCenter    bool       `json:"is_center"`
	CenterHubID *uuid.UUID `json:"center_hub_id"`
}

// Populate the hubs table from a JSON file. Center hubs must precede the
// hubs assigned to them so the self-referencing FK resolves.
func SeedHubsFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed hubs: read %q: %w", jsonPath, err)
	}

	var data []HubSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed hubs: parse json: %w", err)
	}

	for i, h := range data {
		if h.HubID == uuid.Nil {
			return fmt.Errorf("seed hubs: missing hub_id at index %d", i+1)
		}
		if strings.TrimSpace(h.Name) == "" {
			return fmt.Errorf("seed hubs: empty name at index %d", i+1)
		}
		if !h.IsCenter && h.CenterHubID == nil {
			return fmt.Errorf("seed hubs: non-center hub %q has no center_hub_id", h.Name)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed hubs: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO hubs (hub_id, name, lon, lat, is_center, center_hub_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (hub_id) DO UPDATE
	SET name = EXCLUDED.name,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		is_center = EXCLUDED.is_center,
		center_hub_id = EXCLUDED.center_hub_id;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed hubs: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range data {
		if _, err := stmt.Exec(h.HubID, strings.TrimSpace(h.Name), h.Lon, h.Lat, h.IsCenter, h.CenterHubID); err != nil {
			return fmt.Errorf("seed hubs: insert hub %q: %w", h.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed hubs: commit tx: %w", err)
	}

	return nil
}
