package main

import (
	"context"
	"eld-trip-service/internal/adapters/cache"
	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/adapters/routing"
	"eld-trip-service/internal/api"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/platform/db"
	"eld-trip-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, OSRM/Nominatim) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	limits := config.DefaultHOSLimits()
	if path := os.Getenv("HOS_LIMITS_PATH"); strings.TrimSpace(path) != "" {
		loaded, err := config.LoadHOSLimits(path)
		if err != nil {
			log.Fatal(err)
		}
		limits = loaded
		log.Printf("Loaded hours-of-service limits path=%s", path)
	}

	repo, closeRepo, err := buildRepository()
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	geocodeCache, routeCache := buildCaches()

	planner := routing.NewOSRMRoutePlanner(routing.OSRMConfig{
		BaseURL:      os.Getenv("OSRM_BASE_URL"),
		NominatimURL: os.Getenv("NOMINATIM_BASE_URL"),
		UserAgent:    os.Getenv("ROUTING_USER_AGENT"),
	}, geocodeCache, routeCache)

	router := api.NewRouter(planner, repo, limits)

	// Timeouts are tuned for cold-cache route planning (external API latency).
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

// buildRepository picks Postgres when DATABASE_URL is set, otherwise
// an in-memory store for local runs.
func buildRepository() (ports.TripRepository, func(), error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Println("DATABASE_URL not set, using in-memory trip store")
		return repositories.NewMemoryTripRepository(), func() {}, nil
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return repositories.NewPostgresTripRepository(conn), func() { conn.Close() }, nil
}

// buildCaches connects to Redis when REDIS_ADDR is set. A nil cache
// disables caching without changing the planner's behavior.
func buildCaches() (*cache.RedisGeocodeCache, *cache.RedisRouteCache) {
	addr := os.Getenv("REDIS_ADDR")
	if strings.TrimSpace(addr) == "" {
		log.Println("REDIS_ADDR not set, routing caches disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable addr=%s err=%v, routing caches disabled", addr, err)
		return nil, nil
	}

	return cache.NewRedisGeocodeCache(rdb, 7*24*time.Hour),
		cache.NewRedisRouteCache(rdb, 24*time.Hour)
}
