package api

import (
	"net/http"

	"hub-route-service/internal/api/handlers"
	"hub-route-service/internal/ports"
	"hub-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(routeService *services.RouteService, hubs ports.HubRepository) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Service: routeService}
	hubHandler := &handlers.HubHandler{Repo: hubs}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /hub-routes", routeHandler.Create)
	mux.HandleFunc("GET /hub-routes", routeHandler.List)
	mux.HandleFunc("GET /hub-routes/{id}", routeHandler.Get)
	mux.HandleFunc("PATCH /hub-routes/{id}", routeHandler.Update)
	mux.HandleFunc("DELETE /hub-routes/{id}", routeHandler.Delete)

	mux.HandleFunc("GET /hubs/{id}", hubHandler.Get)

	return loggingMiddleware(requestIDMiddleware(mux))
}
