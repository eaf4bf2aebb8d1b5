package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"hub-route-service/internal/adapters/cache"
	"hub-route-service/internal/adapters/navigation"
	"hub-route-service/internal/adapters/repositories"
	"hub-route-service/internal/api"
	"hub-route-service/internal/config"
	"hub-route-service/internal/platform/db"
	"hub-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Kakao) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL, err := config.MustGet("DATABASE_URL")
	if err != nil {
		log.Fatal(err)
	}
	kakaoKey, err := config.MustGet("KAKAO_API_KEY")
	if err != nil {
		log.Fatal(err)
	}

	redisAddr := config.Get("REDIS_ADDR", "localhost:6379")
	topologyPath := config.Get("TOPOLOGY_PATH", "data/topology.json")
	seedPath := config.Get("SEED_PATH", "data/seeds/hubs.json")
	port := config.Get("PORT", "8080")

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	// Initialize schema and seed hub records on startup for local runs.
	if err := repositories.InitSchema(pg); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedHubsFromJSON(pg, seedPath); err != nil {
		log.Fatal(err)
	}

	hubRepo := repositories.NewPostgresHubRepository(pg)
	routeRepo := repositories.NewPostgresRouteRepository(pg)

	// The navigation client keeps a persistent leg cache to avoid repeated
	// directions calls for unchanged hub pairs.
	legCache := cache.NewSQLLegCache(pg)
	navi, err := navigation.NewKakaoNaviClient(kakaoKey, legCache)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()
	routeCache := cache.NewRedisRouteCache(redisClient, 10*time.Minute)

	// Center topology is resolved from display names to stable hub ids once,
	// at startup.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	topology, err := services.LoadTopology(ctx, topologyPath, hubRepo)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	resolver := &services.RouteResolver{
		Hubs:     hubRepo,
		Legs:     navi,
		Topology: topology,
	}
	routeService := &services.RouteService{
		Routes:   routeRepo,
		Cache:    routeCache,
		Resolver: resolver,
	}

	router := api.NewRouter(routeService, hubRepo)

	// Timeouts are tuned for cold-cache resolutions (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
