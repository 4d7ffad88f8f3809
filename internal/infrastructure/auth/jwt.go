package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/domain"
	"github.com/pmartins-dev/roster-api/internal/domain/entity"
)

// JWTService decodes bearer credentials into a caller identity and role.
// This service never issues tokens to clients; cmd/tokengen and the test
// helpers mint them out of band.
type JWTService struct {
	secretKey []byte
	tokenTTL  time.Duration
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

func (s *JWTService) GenerateToken(userID uuid.UUID, role entity.Role) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(s.tokenTTL)

	claims := Claims{
		UserID: userID.String(),
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC()),
			Issuer:    "roster-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenStr, expiresAt, nil
}

// DecodeToken yields the caller's id and role, or domain.ErrTokenInvalid for
// anything that cannot be verified.
func (s *JWTService) DecodeToken(tokenStr string) (uuid.UUID, entity.Role, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return uuid.Nil, "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, "", domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", domain.ErrTokenInvalid
	}

	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", domain.ErrTokenInvalid
	}

	return userID, role, nil
}
