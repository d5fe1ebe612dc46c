package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuditQueueName     string
	AuditMaxAttempts   int
	SeedDir            string
	ScreenshotURLBase  string
	DefaultPageSize    int
	MaxPageSize        int
	RosterMaxBodyBytes int64
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "user"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "proctor_admin_db"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		AuditQueueName:     getEnv("AUDIT_QUEUE_NAME", "audit_events_queue"),
		AuditMaxAttempts:   getEnvAsInt("AUDIT_MAX_ATTEMPTS", 3),
		SeedDir:            getEnv("SEED_DIR", "seed"),
		ScreenshotURLBase:  getEnv("SCREENSHOT_URL_BASE", "https://placehold.co/640x360?text=capture-%d"),
		DefaultPageSize:    getEnvAsInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:        getEnvAsInt("MAX_PAGE_SIZE", 100),
		RosterMaxBodyBytes: int64(getEnvAsInt("ROSTER_MAX_BODY_BYTES", 1<<20)),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
