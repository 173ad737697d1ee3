package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for VIGENCY_TIMEZONE on slim images

	"tentworks-records/internal/core/vigency"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Vigency  VigencyConfig
	Notify   NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	MaxOpenConns int
	MaxIdleConns int
}

// VigencyConfig holds the expiry alert thresholds and the daily sweep schedule
type VigencyConfig struct {
	EquipmentAlertDays int
	DocumentAlertDays  int
	CourseAlertDays    int
	SweepSpec          string
	Timezone           string
}

// NotifyConfig holds LINE Notify settings for expiry digests
type NotifyConfig struct {
	LineNotifyToken string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Vigency:  loadVigencyConfig(),
		Notify: NotifyConfig{
			LineNotifyToken: getEnv("LINE_NOTIFY_TOKEN", ""),
		},
	}

	if err := config.Vigency.validate(); err != nil {
		return nil, err
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "tentworks_records"),

		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}
}

// loadVigencyConfig loads alert thresholds (days) and sweep schedule
func loadVigencyConfig() VigencyConfig {
	return VigencyConfig{
		EquipmentAlertDays: getEnvInt("VIGENCY_EQUIPMENT_ALERT_DAYS", 30),
		DocumentAlertDays:  getEnvInt("VIGENCY_DOCUMENT_ALERT_DAYS", 30),
		CourseAlertDays:    getEnvInt("VIGENCY_COURSE_ALERT_DAYS", 30),
		SweepSpec:          getEnv("VIGENCY_SWEEP_SPEC", "30 6 * * *"),
		Timezone:           getEnv("VIGENCY_TIMEZONE", "America/Bogota"),
	}
}

func (v VigencyConfig) validate() error {
	if v.EquipmentAlertDays < 1 || v.DocumentAlertDays < 1 || v.CourseAlertDays < 1 {
		return fmt.Errorf("vigency alert days must be >= 1 (equipment=%d document=%d course=%d)",
			v.EquipmentAlertDays, v.DocumentAlertDays, v.CourseAlertDays)
	}
	if _, err := time.LoadLocation(v.Timezone); err != nil {
		return fmt.Errorf("invalid VIGENCY_TIMEZONE '%s': %w", v.Timezone, err)
	}
	return nil
}

// Policy returns the vigency thresholds as an engine policy
func (v VigencyConfig) Policy() vigency.Policy {
	return vigency.Policy{
		EquipmentAlertDays:     v.EquipmentAlertDays,
		DocumentAlertDays:      v.DocumentAlertDays,
		DefaultCourseAlertDays: v.CourseAlertDays,
	}
}

// Location returns the timezone "today" is evaluated in
func (v VigencyConfig) Location() *time.Location {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back on parse errors
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(getEnv(key, strconv.Itoa(defaultValue))))
	if err != nil {
		log.Printf("⚠️ Invalid %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://records.tentworks.co"
	}
	return origins
}
