package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config agrupa la configuración de la app, cargada desde env.
type Config struct {
	Port string
	Env  string

	// Postgres (si está vacío, repos in-memory)
	DBDSN string

	// Redis para rate limiting (opcional; vacío = sin límite)
	RedisAddr     string
	RedisPassword string
	MsgRateLimit  int
	MsgRateWindow time.Duration

	// Push (Expo). Vacío = dispatcher noop.
	ExpoPushURL string

	// JWT (verificación HS256). Vacío = modo dev con X-Debug-User-ID.
	JWTSecret string

	CORSAllowedOrigins []string
}

// Load lee env vars con defaults razonables para dev.
func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		Env:           getenv("ENV", "development"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MsgRateLimit:  getenvInt("MSG_RATE_LIMIT", 30),
		MsgRateWindow: getenvDuration("MSG_RATE_WINDOW", time.Minute),
		ExpoPushURL:   os.Getenv("EXPO_PUSH_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
