package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"hub-route-service/internal/api/dto"
	"hub-route-service/internal/domain"
	"hub-route-service/internal/services"

	"github.com/google/uuid"
)

// RouteHandler exposes the hub-route lifecycle endpoints.
type RouteHandler struct {
	Service *services.RouteService
}

func routeResponse(route *domain.HubRoute) dto.RouteResponse {
	return dto.RouteResponse{
		RouteID:            route.RouteID,
		StartHubName:       route.StartHubName,
		EndHubName:         route.EndHubName,
		DistanceKm:         route.DistanceKm,
		EstimatedArrivalAt: route.EstimatedArrivalAt,
	}
}

// decodeBody enforces a single strict JSON object per request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func routeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StartHubID == uuid.Nil || req.EndHubID == uuid.Nil {
		writeError(w, r, http.StatusBadRequest, "start_hub_id and end_hub_id are required")
		return
	}

	route, err := h.Service.CreateRoute(r.Context(), req.StartHubID, req.EndHubID, actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, routeResponse(route))
}

func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	route, err := h.Service.GetRoute(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(route))
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := q.Get("keyword")

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	size := 10
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "size must be between 1 and 100")
			return
		}
		size = n
	}

	listing, err := h.Service.ListRoutes(r.Context(), keyword, page, size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListRoutesResponse{
		Routes: make([]dto.RouteResponse, 0, len(listing.Routes)),
		Total:  listing.Total,
		Page:   listing.Page,
		Size:   listing.Size,
	}
	for _, route := range listing.Routes {
		res.Routes = append(res.Routes, routeResponse(route))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	route, err := h.Service.UpdateRoute(r.Context(), id, req.EndHubID, actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(route))
}

func (h *RouteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteRoute(r.Context(), id, actor(r), role(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DeleteRouteResponse{RouteID: id})
}
