package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"hub-route-service/internal/domain"
	"hub-route-service/internal/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	routeKeyPrefix    = "hubroute:route:"
	listingKeyPrefix  = "hubroute:listing:"
	listingVersionKey = "hubroute:listing:ver"
)

// RedisRouteCache caches single routes by id and listings by their full
// query parameters.
//
// Listings live under a version namespace; EvictListings bumps the version
// so every listing entry becomes unreachable at once. Orphaned entries age
// out through the TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

// GetRoute returns a cached route. Any cache failure degrades to a miss.
func (c *RedisRouteCache) GetRoute(ctx context.Context, id uuid.UUID) (*domain.HubRoute, bool) {
	raw, err := c.client.Get(ctx, routeKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("route cache read failed: route_id=%s err=%v", id, err)
		return nil, false
	}

	var route domain.HubRoute
	if err := json.Unmarshal(raw, &route); err != nil {
		log.Printf("route cache decode failed: route_id=%s err=%v", id, err)
		return nil, false
	}
	return &route, true
}

func (c *RedisRouteCache) PutRoute(ctx context.Context, route *domain.HubRoute) error {
	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode route %s: %w", route.RouteID, err)
	}

	if err := c.client.Set(ctx, routeKeyPrefix+route.RouteID.String(), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: route %s: %w", route.RouteID, err)
	}
	return nil
}

func (c *RedisRouteCache) EvictRoute(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, routeKeyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("evict route cache: route %s: %w", id, err)
	}
	return nil
}

// GetListing returns a cached listing page for the current version.
func (c *RedisRouteCache) GetListing(ctx context.Context, key string) (ports.RouteListing, bool) {
	raw, err := c.client.Get(ctx, c.listingKey(ctx, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteListing{}, false
	}
	if err != nil {
		log.Printf("listing cache read failed: key=%q err=%v", key, err)
		return ports.RouteListing{}, false
	}

	var listing ports.RouteListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		log.Printf("listing cache decode failed: key=%q err=%v", key, err)
		return ports.RouteListing{}, false
	}
	return listing, true
}

func (c *RedisRouteCache) PutListing(ctx context.Context, key string, listing ports.RouteListing) error {
	raw, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("put listing cache: encode %q: %w", key, err)
	}

	if err := c.client.Set(ctx, c.listingKey(ctx, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put listing cache: %q: %w", key, err)
	}
	return nil
}

// EvictListings invalidates every cached listing by bumping the version.
func (c *RedisRouteCache) EvictListings(ctx context.Context) error {
	if err := c.client.Incr(ctx, listingVersionKey).Err(); err != nil {
		return fmt.Errorf("evict listings: bump version: %w", err)
	}
	return nil
}

func (c *RedisRouteCache) listingKey(ctx context.Context, key string) string {
	ver, err := c.client.Get(ctx, listingVersionKey).Result()
	if errors.Is(err, redis.Nil) {
		ver = "0"
	} else if err != nil {
		log.Printf("listing cache version read failed: err=%v", err)
		ver = "0"
	}
	return fmt.Sprintf("%s%s:%s", listingKeyPrefix, ver, key)
}
