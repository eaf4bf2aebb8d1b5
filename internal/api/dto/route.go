package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRouteRequest struct {
	StartHubID uuid.UUID `json:"start_hub_id"`
	EndHubID   uuid.UUID `json:"end_hub_id"`
}

type UpdateRouteRequest struct {
	EndHubID *uuid.UUID `json:"end_hub_id"`
}

type RouteResponse struct {
	RouteID            uuid.UUID `json:"route_id"`
	StartHubName       string    `json:"start_hub_name"`
	EndHubName         string    `json:"end_hub_name"`
	DistanceKm         float64   `json:"distance_km"`
	EstimatedArrivalAt time.Time `json:"estimated_arrival_at"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

type DeleteRouteResponse struct {
	RouteID uuid.UUID `json:"route_id"`
}
