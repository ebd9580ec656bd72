package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppPort string
	AppEnv  string

	// AppTZ is the IANA timezone of the metro region the directory covers.
	// "today" and "open now" are computed in this zone.
	AppTZ string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// SeedFile, when set, points at a YAML file of cities/categories/
	// age groups/tags applied at startup (idempotent by slug).
	SeedFile string

	// EventRetentionMonths > 0 enables the nightly job that deletes events
	// dated more than N months in the past. 0 disables it.
	EventRetentionMonths int
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func Load() *Config {
	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),
		AppTZ:   get("APP_TZ", "America/Chicago"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "kidsapp"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		SeedFile:             get("SEED_FILE", ""),
		EventRetentionMonths: getInt("EVENT_RETENTION_MONTHS", 0),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
