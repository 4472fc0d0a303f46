package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/miqat-app/miqat/internal/aladhan"
	"github.com/miqat-app/miqat/internal/db"
	"github.com/miqat-app/miqat/internal/engine"
	"github.com/miqat-app/miqat/internal/notify"
	"github.com/miqat-app/miqat/internal/prayer"
	"github.com/miqat-app/miqat/internal/redis"
	"github.com/miqat-app/miqat/internal/settings"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	if env.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	store := db.NewStore()
	settingsStore := settings.NewStore(settings.NewRedisKV())

	source := aladhan.NewClient(env.Latitude, env.Longitude, env.Method, env.School)
	days := prayer.NewService(source, store)

	sink := notify.NewMQTTSink(env.MQTTBrokerURL, "miqat-server")
	defer sink.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(days, sink, settingsStore)
	eng.Start(ctx)

	// set up gin router
	r := gin.Default()
	RegisterRoutes(r, days, store, settingsStore, eng)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
