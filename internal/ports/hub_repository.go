package ports

import (
	"context"

	"hub-route-service/internal/domain"

	"github.com/google/uuid"
)

// Port: read-only lookup of hub records. The route core never mutates hubs.
type HubRepository interface {
	// Retrieve a hub with its assigned center hub populated.
	GetHubByID(ctx context.Context, id uuid.UUID) (*domain.Hub, error)
	// Retrieve a hub by its display name (used when resolving topology
	// configuration to stable identifiers).
	GetHubByName(ctx context.Context, name string) (*domain.Hub, error)
}
