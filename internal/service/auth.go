package service

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenClaims mirrors the tokens the condominium backend issues to the
// mobile app after login.
type accessTokenClaims struct {
	Email string `json:"email"`
	Unit  string `json:"unit,omitempty"`
	jwt.RegisteredClaims
}

func (s *Service) AuthEnabled() bool {
	return len(s.jwtSigningKey) > 0
}

func (s *Service) ValidateAccessToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return unauthorizedError("invalid token")
	}
	if !s.AuthEnabled() {
		return unauthorizedError("token validation is not configured")
	}

	claims := &accessTokenClaims{}
	parsedToken, err := jwt.ParseWithClaims(
		token,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, unauthorizedError("invalid token")
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsedToken.Valid {
		return unauthorizedError("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return unauthorizedError("invalid token")
	}

	return nil
}
