// Package authtoken verifies the HS256 bearer tokens minted by the
// authentication collaborator. Issue exists for local tooling and tests.
package authtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/platform/middleware/auth"
)

// Claims represents the JWT claims carried by access tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

func New(signingKey, issuer, audience string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// Issue mints a token for uid valid for expiresIn.
func (s *Service) Issue(uid, email string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	registered := jwt.RegisteredClaims{
		Subject:   uid,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    s.issuer,
		ID:        uuid.NewString(),
	}
	if s.audience != "" {
		registered.Audience = []string{s.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: email, RegisteredClaims: registered})
	return token.SignedString(s.signingKey)
}

// ValidateToken verifies signature, expiry, issuer and audience.
func (s *Service) ValidateToken(tokenString string) (*auth.Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &auth.Claims{UserID: claims.Subject, Email: claims.Email}, nil
}
