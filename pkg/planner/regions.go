package planner

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/config"
	"github.com/travigo/federation/pkg/region"
)

// BuildRegistry registers every configured region. HTTP regions with a cache ttl are
// cached in Redis when a client is given.
func BuildRegistry(instance *config.Instance, redisClient *redis.Client) (*region.Registry, error) {
	regions := region.NewRegistry()

	for _, regionConfig := range instance.Regions {
		if regionConfig.Fixture != "" {
			fixture, err := region.LoadFixture(regionConfig.Fixture)
			if err != nil {
				return nil, fmt.Errorf("region %s: %w", regionConfig.Name, err)
			}
			fixture.Name = regionConfig.Name

			regions.Register(fixture)
			continue
		}

		var r region.Region = region.NewHTTPRegion(regionConfig.Name, regionConfig.URL, regionConfig.Timeout.ToDuration())

		if regionConfig.CacheTTL.IsSet() {
			if redisClient == nil {
				log.Warn().Str("region", regionConfig.Name).Msg("Cache ttl set but Redis is not configured")
			} else {
				r = region.NewCachedRegion(r, redisClient, regionConfig.CacheTTL.ToDuration())
			}
		}

		regions.Register(r)
	}

	return regions, nil
}
