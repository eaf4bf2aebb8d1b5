package handlers

import (
	"net/http"

	"hub-route-service/internal/api/dto"
	"hub-route-service/internal/ports"

	"github.com/google/uuid"
)

// HubHandler exposes read-only hub retrieval endpoints.
type HubHandler struct {
	Repo ports.HubRepository
}

func (h *HubHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid hub id")
		return
	}

	hub, err := h.Repo.GetHubByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.HubResponse{
		HubID:    hub.HubID,
		Name:     hub.Name,
		Lon:      hub.Coords.Lon,
		Lat:      hub.Coords.Lat,
		IsCenter: hub.IsCenter,
	}
	if hub.CenterHub != nil {
		centerID := hub.CenterHub.HubID
		res.CenterHubID = &centerID
	}

	writeJSON(w, r, http.StatusOK, res)
}
