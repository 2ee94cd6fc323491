package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret  string
	Issuer     string
	TokenTTL   time.Duration
	ServerPort string

	// StorageBackend selects the persistence tier: "postgres" or "memory".
	// The memory backend stands in for the real database during frontend
	// development and in tests.
	StorageBackend string
	SeedFile       string
	MockLatency    time.Duration

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	AllowedOrigins []string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("JWT_ISSUER", "encodergroup-portal")
	ttlHours, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	TokenTTL = time.Duration(ttlHours) * time.Hour
	ServerPort = getEnv("SERVER_PORT", "8080")

	StorageBackend = getEnv("STORAGE_BACKEND", "postgres")
	SeedFile = getEnv("SEED_FILE", "")
	latencyMs, _ := strconv.Atoi(getEnv("MOCK_LATENCY_MS", "0"))
	MockLatency = time.Duration(latencyMs) * time.Millisecond

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "portal")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio123")
	MinioBucket = getEnv("MINIO_BUCKET", "portal-attachments")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	AllowedOrigins = []string{getEnv("FRONTEND_ORIGIN", "http://localhost:3000")}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
