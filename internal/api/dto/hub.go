package dto

import "github.com/google/uuid"

type HubResponse struct {
	HubID       uuid.UUID  `json:"hub_id"`
	Name        string     `json:"name"`
	Lon         float64    `json:"lon"`
	Lat         float64    `json:"lat"`
	IsCenter    bool       `json:"is_center"`
	CenterHubID *uuid.UUID `json:"center_hub_id,omitempty"`
}
