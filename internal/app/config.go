package app

import (
	"strings"

	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/envutil"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
)

type Config struct {
	JWTSecretKey string
	Port         string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := envutil.GetEnv("PORT", "8080", log)
	origins := envutil.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)

	var allowOrigins []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowOrigins = append(allowOrigins, origin)
		}
	}

	return Config{
		JWTSecretKey: jwtSecretKey,
		Port:         port,
		AllowOrigins: allowOrigins,
	}
}
