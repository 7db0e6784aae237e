package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/db"
	"github.com/helios-signage/helios/internal/live"
	"github.com/helios-signage/helios/internal/notify"
	"github.com/helios-signage/helios/internal/playback"
	redisclient "github.com/helios-signage/helios/internal/redis"
)

// viewCache plugs the redis helpers into the broadcast coordinator.
type viewCache struct{}

func (viewCache) StoreCurrentView(data []byte) {
	redisclient.StoreCurrentView(context.Background(), data)
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	env := LoadEnvironment()

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if env.RedisAddress != "" {
		redisclient.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := db.NewStore()
	storageSystem := InitStorage(env)

	coordOpts := []live.Option{live.WithViewCache(viewCache{})}
	if env.MQTTBrokerURL != "" {
		notifier, err := notify.NewMQTTNotifier(env.MQTTBrokerURL, "helios-server")
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, continuing without device notices")
		} else {
			defer notifier.Close()
			coordOpts = append(coordOpts, live.WithNotifier(notifier))
		}
	}

	detector := playback.NewDetector(store)
	var coord *live.Coordinator
	hub := live.NewHub(
		func() { coord.Start() },
		func() { coord.Stop() },
	)
	coord = live.NewCoordinator(store, detector, hub, coordOpts...)
	defer coord.Close()

	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem, hub, coord)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
