package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up Client from FEDERATION_REDIS_*. Without an address nothing is cached
// and Client stays nil unless required.
func Connect(required bool) error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["FEDERATION_REDIS_ADDRESS"] != "" {
		address = env["FEDERATION_REDIS_ADDRESS"]
	} else if !required {
		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	if env["FEDERATION_REDIS_PASSWORD"] != "" {
		password = env["FEDERATION_REDIS_PASSWORD"]
	}

	if env["FEDERATION_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["FEDERATION_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	Client = client

	log.Info().Str("address", address).Msg("Redis client setup")

	return nil
}
