package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/flagx"
	"github.com/dmitrijs2005/contactkeeper/internal/timex"
)

// parseEnv overlays Config with environment variables. Unset variables
// leave fields untouched; malformed numeric or duration values panic, the
// same way malformed flags do.
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_DSN, JWT_SECRET, JWT_EXPIRES_IN ("7d", "168h"),
//	BCRYPT_COST, MAX_PAGE_LIMIT, RATE_LIMIT, REDIS_URL, ALLOWED_ORIGINS,
//	LOG_FORMAT, APP_ENV ("production" enables production mode)
func parseEnv(config *Config) {
	lookupString("HTTP_ADDR", &config.EndpointAddrHTTP)
	lookupString("GRPC_ADDR", &config.EndpointAddrGRPC)
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("JWT_SECRET", &config.SecretKey)
	lookupString("RATE_LIMIT", &config.RateLimit)
	lookupString("REDIS_URL", &config.RedisURL)
	lookupString("LOG_FORMAT", &config.LogFormat)

	if v, ok := os.LookupEnv("JWT_EXPIRES_IN"); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("JWT_EXPIRES_IN: %w", err))
		}
		config.TokenValidityDuration = d
	}
	lookupInt("BCRYPT_COST", &config.BcryptCost)
	lookupInt("MAX_PAGE_LIMIT", &config.MaxPageLimit)

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = flagx.SplitList(v)
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		config.Production = strings.EqualFold(v, "production")
	}
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func lookupInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = n
}
