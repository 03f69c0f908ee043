package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"certihub_backend/internals/constants"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated identity behind a request.
type Principal struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Kind  string `json:"kind"`
	Role  string `json:"role,omitempty"`
}

func (p Principal) IsStaff() bool  { return p.Kind == constants.KindStaff }
func (p Principal) IsClient() bool { return p.Kind == constants.KindClient }

func (p Principal) valid() bool {
	if p.ID == 0 {
		return false
	}
	switch p.Kind {
	case constants.KindClient:
		return p.Role == ""
	case constants.KindStaff:
		return constants.IsRoleKind(p.Role)
	}
	return false
}

type Claims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Kind  string `json:"kind"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() Principal {
	return Principal{ID: c.ID, Email: c.Email, Kind: c.Kind, Role: c.Role}
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock swaps the issuing clock.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs an HS256 token for p.
func (s *TokenService) Issue(p Principal) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("token secret is not configured")
	}
	if !p.valid() {
		return "", time.Time{}, fmt.Errorf("cannot issue token for principal kind=%q role=%q", p.Kind, p.Role)
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		ID:    p.ID,
		Email: p.Email,
		Kind:  p.Kind,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate checks signature, algorithm, expiry and claim shape. Every
// failure collapses to ErrInvalidToken.
func (s *TokenService) Validate(raw string) (*Claims, error) {
	raw = StripBearer(raw)
	if raw == "" || len(s.secret) == 0 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || !claims.Principal().valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// StripBearer removes a case-insensitive "Bearer " prefix.
func StripBearer(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return raw
}
