package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// AccessClaims are the claims every payroll route reads from the bearer token.
type AccessClaims struct {
	UserID    string
	CompanyID string
	Role      user.Role
}

type Service interface {
	GenerateAccessToken(claims AccessClaims, ttl time.Duration) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
	now       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService verifies HS256 tokens issued by the identity service that shares secretKey.
func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:       time.Now,
	}
}

// GenerateAccessToken is used by local tooling and tests; production tokens come from the auth service.
func (j *JWTService) GenerateAccessToken(claims AccessClaims, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(ttl).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    claims.UserID,
		"company_id": claims.CompanyID,
		"role":       string(claims.Role),
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}
