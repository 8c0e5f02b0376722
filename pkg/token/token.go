package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/multicomhq/chitfund-backend/internal/apperrors"
)

// Principal kinds carried in the claim set. A token identifies exactly one
// kind, so the verifier never has to probe both credential stores.
const (
	KindUser  = "user"
	KindAdmin = "admin"
)

// Claims is the decoded payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Kind       string `json:"kind"`
	UserID     string `json:"userId,omitempty"`
	CardNumber int    `json:"cardNumber,omitempty"`
	AdminID    string `json:"adminId,omitempty"`
}

// Service issues and verifies HS256 session tokens.
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService creates a token Service. The secret must be non-empty; callers
// are expected to fail startup otherwise.
func NewService(secret string, expiry time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is empty")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Service{secret: []byte(secret), expiry: expiry}, nil
}

// IssueUserToken signs a user claim carrying the user id and card number.
func (s *Service) IssueUserToken(userID string, cardNumber int) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: s.registered(),
		Kind:             KindUser,
		UserID:           userID,
		CardNumber:       cardNumber,
	})
}

// IssueAdminToken signs an admin claim carrying the admin id.
func (s *Service) IssueAdminToken(adminID string) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: s.registered(),
		Kind:             KindAdmin,
		AdminID:          adminID,
	})
}

// Verify decodes and validates a token, distinguishing expiry from any other
// signature or format failure.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Kind != KindUser && claims.Kind != KindAdmin {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) registered() jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
}

func (s *Service) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
