package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all application configuration
type Config struct {
	// Env is the environment name (development, production, ...)
	Env string

	Server   ServerConfig
	Database DatabaseConfig
	Media    MediaConfig
	CORS     CORSConfig
	Upload   UploadConfig
	Cache    CacheConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// MediaConfig holds media-store account settings
type MediaConfig struct {
	CloudName         string
	APIKey            string
	APISecret         string
	UploadPreset      string
	DeleteConcurrency int
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string
}

// UploadConfig holds multipart upload settings
type UploadConfig struct {
	MaxFileSize int64 // in bytes
	TempDir     string
}

// CacheConfig holds the optional Redis article cache settings
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from the environment, after loading a .env file if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: databaseFromEnv(),
		Media: MediaConfig{
			CloudName:         os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:            os.Getenv("CLOUDINARY_API_KEY"),
			APISecret:         os.Getenv("CLOUDINARY_API_SECRET"),
			UploadPreset:      os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
			DeleteConcurrency: getIntEnv("MEDIA_DELETE_CONCURRENCY", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Upload: UploadConfig{
			MaxFileSize: getInt64Env("MAX_FILE_SIZE", 10*1024*1024), // 10MB
			TempDir:     getEnv("UPLOAD_TEMP_DIR", "/tmp/"),
		},
		Cache: CacheConfig{
			RedisURL: os.Getenv("REDIS_URL"),
			TTL:      getDurationEnv("CACHE_TTL", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for tools that never touch the media store
func LoadDatabase() (*DatabaseConfig, error) {
	_ = godotenv.Load()

	cfg := databaseFromEnv()
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("missing required environment variables: DATABASE_URL")
	}
	return &cfg, nil
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		URL:          os.Getenv("DATABASE_URL"),
		MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
	}
}

// Validate reports every missing required setting in a single error
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", c.Database.URL},
		{"CLOUDINARY_CLOUD_NAME", c.Media.CloudName},
		{"CLOUDINARY_API_KEY", c.Media.APIKey},
		{"CLOUDINARY_API_SECRET", c.Media.APISecret},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.Media.DeleteConcurrency <= 0 {
		return fmt.Errorf("MEDIA_DELETE_CONCURRENCY must be positive")
	}
	return nil
}

// IsDevelopment reports whether startup diagnostics should be printed
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LogSummary writes the resolved configuration with secrets masked
func (c *Config) LogSummary(log zerolog.Logger) {
	log.Info().
		Str("env", c.Env).
		Str("port", c.Server.Port).
		Str("database_url", maskSecret(c.Database.URL)).
		Str("cloud_name", c.Media.CloudName).
		Str("api_key", maskSecret(c.Media.APIKey)).
		Bool("api_secret_set", c.Media.APISecret != "").
		Str("upload_preset", c.Media.UploadPreset).
		Strs("allowed_origins", c.CORS.AllowedOrigins).
		Int64("max_file_size", c.Upload.MaxFileSize).
		Str("upload_temp_dir", c.Upload.TempDir).
		Bool("cache_enabled", c.Cache.RedisURL != "").
		Msg("Configuration loaded")
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
