package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every externally supplied setting. Values come from the
// environment, with a .env file honored in development.
type Config struct {
	DatabaseURL string
	Port        int

	JWTSecret string
	// JWKSURL enables verification of RS256 tokens minted by an external
	// identity provider alongside locally issued HS256 tokens.
	JWKSURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        envInt("PORT", 8080),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWKSURL:   os.Getenv("AUTH_JWKS_URL"),

		RedisAddr:     envString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		MinioEndpoint:  envString("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: envString("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: envString("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		MinioBucket:    envString("MINIO_BUCKET", "erp-imports"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
