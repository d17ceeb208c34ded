package region

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

// CachedRegion keeps the successful answers of a region in Redis
type CachedRegion struct {
	Region Region
	Cache  *cache.Cache[string]
}

func NewCachedRegion(region Region, client *redis.Client, expiration time.Duration) *CachedRegion {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &CachedRegion{
		Region: region,
		Cache:  cache.New[string](redisStore),
	}
}

func (c *CachedRegion) GetName() string {
	return c.Region.GetName()
}

func (c *CachedRegion) cacheKey(call Call) string {
	return fmt.Sprintf("federation:journeys:%s:%s", c.GetName(), CallQuery(call).Encode())
}

func (c *CachedRegion) Journeys(ctx context.Context, call Call) (*ctdf.Response, error) {
	key := c.cacheKey(call)

	cachedValue, err := c.Cache.Get(ctx, key)
	if err == nil && cachedValue != "" {
		var response *ctdf.Response
		if err := json.Unmarshal([]byte(cachedValue), &response); err == nil && response != nil {
			log.Debug().Str("region", c.GetName()).Msg("Region call served from cache")
			return response, nil
		}
	}

	response, err := c.Region.Journeys(ctx, call)
	if err != nil {
		return nil, err
	}

	if !response.HasError() {
		responseJSON, err := json.Marshal(response)
		if err == nil {
			if err := c.Cache.Set(ctx, key, string(responseJSON)); err != nil {
				log.Error().Err(err).Str("region", c.GetName()).Msg("Failed to cache region response")
			}
		}
	}

	return response, nil
}
