package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const issuer = "storefront"

// Claims carried by an access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and validates HS256 access tokens.
type JWTService struct {
	secretKey   []byte
	tokenExpiry time.Duration
	now         func() time.Time
}

func NewJWTService(secretKey string, tokenExpiry time.Duration) *JWTService {
	return &JWTService{
		secretKey:   []byte(secretKey),
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

// GenerateAccessToken creates a signed token for the given identity.
func (s *JWTService) GenerateAccessToken(userID, email string, role Role) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenExpiry)

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken verifies signature, algorithm, issuer and expiry.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims.Role = ParseRole(string(claims.Role))
	if claims.Role == RoleNone {
		claims.Role = RoleUser
	}
	return claims, nil
}

func (s *JWTService) TokenExpiry() time.Duration {
	return s.tokenExpiry
}
