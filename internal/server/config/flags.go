package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-b int      bcrypt cost
//	-m int      maximum page size
//	-r string   rate limit for auth endpoints ("20-M")
//	-R string   Redis URL for the rate limiter store
//	-o string   comma-separated CORS origins
//	-l string   log format
//	-p bool     production mode (use -p or -p=true)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-b", "-m", "-r", "-R", "-o", "-l", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.MaxPageLimit, "m", config.MaxPageLimit, "maximum page size")
	fs.StringVar(&config.RateLimit, "r", config.RateLimit, "auth endpoints rate limit, e.g. 20-M")
	fs.StringVar(&config.RedisURL, "R", config.RedisURL, "redis URL for rate limiter")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma separated")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format: json, console, slog, text")
	fs.BoolVar(&config.Production, "p", config.Production, "production mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only explicit flags overwrite converted fields, so "90m" from JSON survives
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Hour
		case "o":
			config.AllowedOrigins = flagx.SplitList(*origins)
		}
	})
}
