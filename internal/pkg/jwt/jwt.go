package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const TokenTypeSession = "session"

// Claims carried by a dashboard session token.
// OrganizationID is the organization active when the token was issued; the
// session store may hold a newer selection.
type Claims struct {
	UserID         string `json:"uid"`
	SessionID      string `json:"sid"`
	OrganizationID string `json:"org,omitempty"`
	Type           string `json:"type"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates JWT service
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// IssueSessionToken signs a token for a new session and returns it with its session id
func (s *Service) IssueSessionToken(userID, organizationID string) (token string, sessionID string, expiresAt time.Time, err error) {
	now := time.Now()
	sessionID = uuid.New().String()
	expiresAt = now.Add(s.ttl)

	claims := Claims{
		UserID:         userID,
		SessionID:      sessionID,
		OrganizationID: organizationID,
		Type:           TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return
}

// ValidateSessionToken validates and parses a session token
func (s *Service) ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != TokenTypeSession || claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) TTL() time.Duration { return s.ttl }
