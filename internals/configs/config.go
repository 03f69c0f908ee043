package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	AppEnv       string
	JWTSecret    string
	JWTExpiresIn time.Duration
)

const defaultJWTExpiresIn = 24 * time.Hour

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("⚠️ .env file not found, using system ENV")
		} else {
			log.Info().Msg("✅ .env file loaded")
		}
	} else {
		log.Info().Msg("🚀 Running in Railway, using system ENV")
	}

	AppEnv = strings.ToLower(GetEnv("APP_ENV", "production"))
	JWTSecret = GetEnv("JWT_SECRET")
	JWTExpiresIn = ParseExpiresIn(GetEnv("JWT_EXPIRES_IN"), defaultJWTExpiresIn)

	if JWTSecret == "" {
		log.Error().Msg("❌ JWT_SECRET is not set!")
	} else {
		log.Info().Msg("✅ JWT_SECRET loaded.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func IsDevelopment() bool {
	return AppEnv == "development"
}

// ParseExpiresIn accepts Go durations ("90m", "12h") plus the "<n>d" and
// bare-seconds forms found in older deployments.
func ParseExpiresIn(raw string, def time.Duration) time.Duration {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return def
	}
	if strings.HasSuffix(raw, "d") {
		if n, err := strconv.Atoi(strings.TrimSuffix(raw, "d")); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return def
}
