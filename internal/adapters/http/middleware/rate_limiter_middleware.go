// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"log"
	"net/http"
	"strconv"

	"github.com/HenriqueMV/quotagate/internal/adapters/http/request"
	"github.com/HenriqueMV/quotagate/internal/core/ports"
)

const rateLimitExceededMessage = "you have reached the maximum number of requests or actions allowed within a certain time frame"

func NewRateLimiterMiddleware(limiter ports.Limiter, check ports.Check) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Evaluate(r.Context(), request.New(r), check, false)
			if err != nil {
				log.Printf("rate limiter failed: %v", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if decision.Usage != nil {
				remaining := decision.Usage.Limit - decision.Usage.Count
				if remaining < 0 {
					remaining = 0
				}
				w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(decision.Usage.Limit, 10))
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(int64(decision.Usage.TimeLeft.Seconds()), 10))
			}

			if decision.Limited {
				writeTooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeTooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(rateLimitExceededMessage))
}
