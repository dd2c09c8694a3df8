package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 30 * time.Minute

type companyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// CompanyRateLimiter keeps one token bucket per company_id claim.
type CompanyRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*companyLimiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewCompanyRateLimiter allows perSecond requests per company with the given burst.
func NewCompanyRateLimiter(perSecond float64, burst int) *CompanyRateLimiter {
	return &CompanyRateLimiter{
		limiters: make(map[string]*companyLimiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *CompanyRateLimiter) allow(companyID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(l.limiters, id)
		}
	}

	cl, ok := l.limiters[companyID]
	if !ok {
		cl = &companyLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[companyID] = cl
	}
	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

// Handler must run after AuthRequired so the company claim is present.
func (l *CompanyRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, _ := jwtauth.FromContext(r.Context())
		companyID, _ := claims["company_id"].(string)

		if !l.allow(companyID) {
			w.Header().Set("Retry-After", "10")
			response.TooManyRequests(w, "Too many payroll runs for this organization, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}
