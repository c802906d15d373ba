package server

import (
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RequirePlayerID extracts the user ID from the JWT set by echo-jwt and
// validates it, then stores it in the context for handlers.
func RequirePlayerID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing token")
		}

		claims, ok := user.Claims.(jwt.MapClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
		}

		id, ok := claims["sub"].(string)
		if !ok || id == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user ID in token")
		}

		c.Set("player_id", id)
		return next(c)
	}
}

// newRateLimiterStore builds a per-IP token bucket limiter store from the
// configured requests-per-second budget, with a burst equal to that
// budget; a budget of 0 gives rate.Limit(0) with a burst of 0, which
// rejects every request.
func newRateLimiterStore(requestsPerSecond int) *rateLimiterStore {
	return &rateLimiterStore{
		rps:      rate.Limit(requestsPerSecond),
		burst:    requestsPerSecond,
		limiters: make(map[string]*rate.Limiter),
	}
}

type rateLimiterStore struct {
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// Allow implements echo/middleware.RateLimiterStore.
func (s *rateLimiterStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[identifier]
	if !ok {
		limiter = rate.NewLimiter(s.rps, s.burst)
		s.limiters[identifier] = limiter
	}
	return limiter.Allow(), nil
}
