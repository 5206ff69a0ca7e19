package httpserver

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const limiterPrefix = "contactkeeper:limiter"

// NewLimiterStore returns a redis-backed store when redisURL is set, so
// several server instances share counters, and an in-memory store otherwise.
// The redis client is returned for health checks and shutdown; it is nil for
// the memory store.
func NewLimiterStore(redisURL string) (limiter.Store, *redis.Client, error) {
	if redisURL == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          limiterPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   limiterPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis limiter store: %w", err)
	}
	return store, client, nil
}

// NewIPRateLimiter limits requests per client IP. rateFormatted uses the
// limiter notation: "20-M" is 20 per minute, "5-S" is 5 per second.
// An empty rate disables limiting.
func NewIPRateLimiter(rateFormatted string, store limiter.Store) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, rate)
	mw := stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusTooManyRequests, msgRateLimited)
	}))
	return mw.Handler, nil
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
