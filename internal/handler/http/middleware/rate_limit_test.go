package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompanyRateLimiter_BucketsArePerCompany(t *testing.T) {
	l := NewCompanyRateLimiter(1.0/60, 2)

	assert.True(t, l.allow("company-a"))
	assert.True(t, l.allow("company-a"))
	assert.False(t, l.allow("company-a"))

	assert.True(t, l.allow("company-b"))
}

func TestCompanyRateLimiter_RefillsAndForgetsIdleCompanies(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	l := NewCompanyRateLimiter(1.0/60, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("company-a"))
	assert.False(t, l.allow("company-a"))

	now = now.Add(time.Minute)
	assert.True(t, l.allow("company-a"))

	now = now.Add(limiterIdleTTL + time.Second)
	assert.True(t, l.allow("company-b"))
	assert.Len(t, l.limiters, 1)
}
