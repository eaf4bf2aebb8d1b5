package domain

import "github.com/google/uuid"

// Hub is a physical logistics hub. Non-center hubs are assigned to exactly
// one center hub and route through it before any long-haul leg.
type Hub struct {
	HubID     uuid.UUID
	Name      string
	Coords    Coordinates
	IsCenter  bool
	CenterHub *Hub // nil when the hub is itself a center
}

// Center returns the hub's effective center: the hub itself when it is a
// center, otherwise its assigned center hub.
func (h *Hub) Center() *Hub {
	if h.IsCenter || h.CenterHub == nil {
		return h
	}
	return h.CenterHub
}
