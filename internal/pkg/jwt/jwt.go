package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies and issues the engine's access tokens. Identity lives in
// an external directory; the engine only cares that a token carries a
// company_id claim to scope every request by.
type Service struct {
	tokenAuth  *jwtauth.JWTAuth
	expiration time.Duration
}

func NewService(secretKey string, expiration time.Duration) *Service {
	return &Service{
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		expiration: expiration,
	}
}

func (s *Service) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// GenerateAccessToken issues a company-scoped token, used by operational
// tooling and tests. Production tokens come from the identity service with
// the same claim shape.
func (s *Service) GenerateAccessToken(userID, email, companyID, role string) (string, int64, error) {
	expiresAt := time.Now().Add(s.expiration).Unix()

	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"email":      email,
		"company_id": companyID,
		"role":       role,
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}
