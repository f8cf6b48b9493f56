package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
)

var ErrEmptySecret = errors.New("signing secret must not be empty")

// Principal is the verified identity behind a request.
type Principal struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IdentityVerifier turns a bearer credential into a Principal.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

type identityClaims struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	parser   *jwt.Parser
}

// NewJWTVerifier creates a verifier. issuer and audience are enforced only
// when non-empty.
func NewJWTVerifier(secret, issuer, audience string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &JWTVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		parser:   jwt.NewParser(opts...),
	}, nil
}

// Verify checks signature, expiry and the optional issuer/audience, then
// extracts the principal. Any failure is ErrInvalidCredential.
func (v *JWTVerifier) Verify(_ context.Context, token string) (*Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingCredential
	}

	claims := &identityClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	if strings.TrimSpace(claims.Email) == "" {
		return nil, fmt.Errorf("%w: email claim missing", ErrInvalidCredential)
	}

	name := claims.Name
	if name == "" {
		name = claims.DisplayName
	}
	if name == "" {
		name = constants.AnonymousName
	}

	return &Principal{Email: claims.Email, Name: name}, nil
}

// Issue signs a token for p that expires after ttl.
func (v *JWTVerifier) Issue(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.issuer != "" {
		claims.Issuer = v.issuer
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
