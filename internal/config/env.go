package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	DBDSN          string
	JWTSecret      string
	RedisURL       string
	UploadDir      string
	MigrationsPath string
	CORSOrigins    []string
	CookieSecure   bool
}

// LoadEnv reads configuration from the environment. A .env file is loaded
// first when present so local dev matches the original dotenv setup.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = defaultDSN()
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "super-secret-key-change-me"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	return Env{
		AppAddr:        appAddr,
		GinMode:        ginMode,
		DBDSN:          dsn,
		JWTSecret:      jwtSecret,
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		UploadDir:      uploadDir,
		MigrationsPath: strings.TrimSpace(os.Getenv("MIGRATIONS_PATH")),
		CORSOrigins:    parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		CookieSecure:   parseBoolEnv("COOKIE_SECURE", ginMode == "release"),
	}
}

// parseBoolEnv reads a boolean flag; an unset or malformed value falls back
// to def so plain-http local dev keeps working without extra configuration.
func parseBoolEnv(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func parseOrigins(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	return out
}
