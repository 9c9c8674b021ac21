package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-portfolio-secret"

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Storage
	DataDir    string
	UploadsDir string

	// Public URL resolution for uploaded assets
	PublicURL      string // wins over request headers when set
	FallbackDomain string // used in production when the request host is unusable

	// Redis (optional; enables the shared login rate limit)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Google Cloud Storage (optional; uploads go to disk when GCSBucket is empty)
	GCSBucket              string
	GCSPrefix              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Bootstrap admin
	AdminUsername string
	AdminPassword string // empty means generate a one-time password
	AdminEmail    string

	// Login throttling
	LoginRateLimit       int
	LoginRateWindow      time.Duration
	RateLimitSkipPrivate bool

	// Proxies whose X-Forwarded-For is honoured (comma-separated IPs/CIDRs);
	// empty means the TCP peer is the client
	TrustedProxies string

	// Lenient tag parsing drops malformed tag lists instead of rejecting them
	TagsLenient bool

	// Download filename of the résumé
	CVDownloadName string

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "portfolio-cms"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3001"),
		GinMode: getenv("GIN_MODE", "release"),

		DataDir:    getenv("DATA_DIR", "./data"),
		UploadsDir: getenv("UPLOADS_DIR", "./uploads"),

		PublicURL:      strings.TrimRight(getenv("PUBLIC_URL", ""), "/"),
		FallbackDomain: getenv("FALLBACK_DOMAIN", ""),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSPrefix:              getenv("GCS_PREFIX", "uploads"),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		JWTSecret: getenv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:    getdur("JWT_TTL", 24*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),

		LoginRateLimit:       getint("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:      getdur("LOGIN_RATE_WINDOW", time.Minute),
		RateLimitSkipPrivate: getbool("RATE_LIMIT_SKIP_PRIVATE", false),
		TrustedProxies:       getenv("TRUSTED_PROXIES", ""),

		TagsLenient: getbool("TAGS_LENIENT", false),

		CVDownloadName: getenv("CV_DOWNLOAD_NAME", "CV.pdf"),

		// Debug metrics toggle (off unless asked for)
		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Validate refuses settings that are unsafe to run with in production.
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.JWTSecret == DefaultJWTSecret || len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be set to at least 32 characters in production")
		}
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string { return splitList(c.CORSAllowedOrigins) }

// TrustedProxyList returns nil when no proxy is configured, which makes gin
// ignore forwarding headers entirely.
func (c *Config) TrustedProxyList() []string {
	if l := splitList(c.TrustedProxies); len(l) > 0 {
		return l
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
