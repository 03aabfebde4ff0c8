package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort         string
	AppEnv          string
	AppBaseURL      string
	DBDSN           string
	JWTSecret       string
	JWTExpiresMin   int
	IDEncryptKey    string
	CORSOrigins     string
	FrontendBaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string

	UploadDriver        string
	UploadDir           string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	WhatsAppNumber string

	CatalogFetchTimeout  time.Duration
	UpstreamVPSURL       string
	UpstreamDedicatedURL string

	OrderRateLimit  int
	OrderRateWindow time.Duration

	Log LogConfig
}

type LogConfig struct {
	Level      string
	Format     string
	Output     string
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Load reads configuration from the environment. Call godotenv.Load first
// when a .env file should be honoured.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return FromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("JWT_EXPIRES_MIN", 10080)
	v.SetDefault("CORS_ORIGINS", "http://127.0.0.1:3000, http://localhost:3000")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("UPLOAD_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("CLOUDINARY_FOLDER", "payment-proofs")
	v.SetDefault("WHATSAPP_NUMBER", "+201063194547")
	v.SetDefault("CATALOG_FETCH_TIMEOUT", "10s")
	v.SetDefault("ORDER_RATE_LIMIT", 5)
	v.SetDefault("ORDER_RATE_WINDOW", "10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "both")
	v.SetDefault("LOG_PATH", "./logs/app.log")
	v.SetDefault("LOG_MAX_SIZE", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 10)
	v.SetDefault("LOG_MAX_AGE", 30)
	v.SetDefault("LOG_COMPRESS", true)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		AppPort:         v.GetString("APP_PORT"),
		AppEnv:          strings.ToLower(v.GetString("APP_ENV")),
		AppBaseURL:      v.GetString("APP_BASE_URL"),
		DBDSN:           must(v, "DB_DSN"),
		JWTSecret:       must(v, "JWT_SECRET"),
		JWTExpiresMin:   v.GetInt("JWT_EXPIRES_MIN"),
		IDEncryptKey:    v.GetString("ID_ENCRYPT_KEY"),
		CORSOrigins:     v.GetString("CORS_ORIGINS"),
		FrontendBaseURL: v.GetString("FRONTEND_BASE_URL"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		GoogleClientID: v.GetString("GOOGLE_CLIENT_ID"),
		GoogleSecret:   v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirect: v.GetString("GOOGLE_REDIRECT_URL"),

		UploadDriver:        strings.ToLower(v.GetString("UPLOAD_DRIVER")),
		UploadDir:           v.GetString("UPLOAD_DIR"),
		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    v.GetString("CLOUDINARY_FOLDER"),

		WhatsAppNumber: v.GetString("WHATSAPP_NUMBER"),

		CatalogFetchTimeout:  v.GetDuration("CATALOG_FETCH_TIMEOUT"),
		UpstreamVPSURL:       v.GetString("CATALOG_UPSTREAM_VPS_URL"),
		UpstreamDedicatedURL: v.GetString("CATALOG_UPSTREAM_DEDICATED_URL"),

		OrderRateLimit:  v.GetInt("ORDER_RATE_LIMIT"),
		OrderRateWindow: v.GetDuration("ORDER_RATE_WINDOW"),

		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Format:     v.GetString("LOG_FORMAT"),
			Output:     v.GetString("LOG_OUTPUT"),
			Path:       v.GetString("LOG_PATH"),
			MaxSize:    v.GetInt("LOG_MAX_SIZE"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAge:     v.GetInt("LOG_MAX_AGE"),
			Compress:   v.GetBool("LOG_COMPRESS"),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Origins splits CORS_ORIGINS into the comma list fiber's cors expects.
func (c Config) Origins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func must(v *viper.Viper, k string) string {
	s := v.GetString(k)
	if s == "" {
		panic("missing env: " + k)
	}
	return s
}
