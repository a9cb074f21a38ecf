package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	SQLitePath string
}

// PostgresDSN формирует строку подключения для диалекта postgres
func (c DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	GroupTTL time.Duration
}

type AuthConfig struct {
	JWTSecret        string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	ReadRequiresAuth bool
	TokenRateLimit   float64
	TokenRateBurst   int
}

type MediaConfig struct {
	Root string
	URL  string
}

type Config struct {
	HTTPAddr           string
	APIPrefix          string
	LogLevel           string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	MaxBodyBytes       int64
	Database           DatabaseConfig
	Redis              RedisConfig
	Auth               AuthConfig
	Media              MediaConfig
}

// LoadEnv подгружает .env, если он есть
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

// Load собирает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		APIPrefix:          strings.TrimSuffix(getEnv("API_PREFIX", "/api/v1"), "/"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		MetricsEnabled:     getBool("METRICS_ENABLED", true, &errs),
		MaxBodyBytes:       int64(getInt("MAX_BODY_BYTES", 10<<20, &errs)),
		Database:           LoadDatabase(),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0, &errs),
			GroupTTL: getDuration("GROUP_CACHE_TTL", 5*time.Minute, &errs),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			AccessTokenTTL:   getDuration("ACCESS_TOKEN_TTL", 24*time.Hour, &errs),
			RefreshTokenTTL:  getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour, &errs),
			ReadRequiresAuth: getBool("READ_REQUIRES_AUTH", false, &errs),
			TokenRateLimit:   getFloat("TOKEN_RATE_LIMIT", 1, &errs),
			TokenRateBurst:   getInt("TOKEN_RATE_BURST", 5, &errs),
		},
		Media: MediaConfig{
			Root: getEnv("MEDIA_ROOT", "media"),
			URL:  ensureSlashes(getEnv("MEDIA_URL", "/media/")),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("environment variable JWT_SECRET is not set"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// LoadDatabase читает только настройки базы данных
func LoadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:       getEnv("DB_HOST", "localhost"),
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "yatube"),
		Port:       getEnv("DB_PORT", "5432"),
		SSLMode:    getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "yatube.sqlite3"),
	}
}

func getEnv(key, def string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func getFloat(key string, def float64, errs *[]error) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func getBool(key string, def bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func ensureSlashes(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
