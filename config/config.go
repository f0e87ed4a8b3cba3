package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads from the environment.
// Zero values are replaced by the defaults documented on each field.
type Config struct {
	Port   string // PORT, default "8081"
	AppEnv string // APP_ENV, default "development"

	DatabaseURL string // DATABASE_URL, falls back to DB_HOST/DB_USER/... local DSN
	RedisURL    string // REDIS_URL, default "redis://localhost:6379"

	SupabaseURL        string // SUPABASE_URL
	SupabaseServiceKey string // SUPABASE_SERVICE_ROLE_KEY
	SupabaseJWTSecret  string // SUPABASE_JWT_SECRET; when set, tokens are verified locally

	VAPIDPublicKey  string // VAPID_PUBLIC_KEY
	VAPIDPrivateKey string // VAPID_PRIVATE_KEY
	VAPIDSubject    string // VAPID_SUBJECT, default "mailto:contato@desapegodosmartins.com.br"

	CloudinaryCloudName string // CLOUDINARY_CLOUD_NAME
	CloudinaryAPIKey    string // CLOUDINARY_API_KEY
	CloudinaryAPISecret string // CLOUDINARY_API_SECRET

	AllowedOrigins []string // ALLOWED_ORIGINS, comma separated, default http://localhost:4321
	WhatsappNumber string   // WHATSAPP_NUMBER
	SiteName       string   // SITE_NAME, default "Desapego dos Martins"

	CategoryCacheTTL time.Duration // CATEGORY_CACHE_TTL, default 5m
	PushConcurrency  int           // PUSH_CONCURRENCY, default 10
	PushTimeout      time.Duration // PUSH_TIMEOUT, default 10s
	RateLimit        int           // RATE_LIMIT_PER_MINUTE, default 30
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:   getEnv("PORT", "8081"),
		AppEnv: getEnv("APP_ENV", "development"),

		DatabaseURL: databaseURL(),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseJWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),

		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubject:    getEnv("VAPID_SUBJECT", "mailto:contato@desapegodosmartins.com.br"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:4321")),
		WhatsappNumber: os.Getenv("WHATSAPP_NUMBER"),
		SiteName:       getEnv("SITE_NAME", "Desapego dos Martins"),

		CategoryCacheTTL: getDuration("CATEGORY_CACHE_TTL", 5*time.Minute),
		PushConcurrency:  getInt("PUSH_CONCURRENCY", 10),
		PushTimeout:      getDuration("PUSH_TIMEOUT", 10*time.Second),
		RateLimit:        getInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PushEnabled reports whether both halves of the VAPID key pair are set.
func (c Config) PushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return "host=" + getEnv("DB_HOST", "localhost") +
		" user=" + getEnv("DB_USER", "postgres") +
		" password=" + getEnv("DB_PASSWORD", "") +
		" dbname=" + getEnv("DB_NAME", "desapego") +
		" port=" + getEnv("DB_PORT", "5432") +
		" sslmode=disable TimeZone=UTC"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
