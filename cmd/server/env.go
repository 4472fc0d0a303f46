package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	Latitude  float64
	Longitude float64
	Method    int
	School    int
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		// Hyderabad, India; ISNA method, Hanafi school
		Latitude:  envFloat("PRAYER_LATITUDE", 17.3850),
		Longitude: envFloat("PRAYER_LONGITUDE", 78.4867),
		Method:    envInt("PRAYER_METHOD", 2),
		School:    envInt("PRAYER_SCHOOL", 1),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.MQTTBrokerURL == "" {
		env.MQTTBrokerURL = "tcp://0.0.0.0:1883"
	}

	// Basic validation
	if env.DatabaseURL == "" || env.RedisAddress == "" {
		log.Fatal().Msg("Missing required environment variables")
	}

	return env
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatal().Str("key", key).Str("value", raw).Msg("invalid float environment variable")
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatal().Str("key", key).Str("value", raw).Msg("invalid integer environment variable")
	}
	return v
}
