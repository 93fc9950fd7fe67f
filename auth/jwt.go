package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devsearch-app/backend/config"
	"github.com/devsearch-app/backend/errs"
)

// Claims carried by every access and refresh token. Expiry is the only
// invalidation mechanism; there is no revocation list.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

const (
	defaultAccessHours = 24
	refreshHours       = 24 * 7
)

// TokenService signs and validates the HS256 tokens used on every
// authenticated request.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenService reads JWT_SECRET and JWT_EXPIRES_HOURS from the
// config map.
func NewTokenService(cfg map[string]string) TokenService {
	hours := config.GetInt(cfg, "JWT_EXPIRES_HOURS", defaultAccessHours)
	if hours <= 0 {
		hours = defaultAccessHours
	}
	return TokenService{
		secret:    []byte(config.GetString(cfg, "JWT_SECRET", "")),
		accessTTL: time.Duration(hours) * time.Hour,
	}
}

// GenerateToken signs a token for the given profile valid for ttl.
func (s TokenService) GenerateToken(profileID uuid.UUID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   profileID.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateAccessToken issues the short-lived token used on every
// authenticated request.
func (s TokenService) GenerateAccessToken(profileID uuid.UUID, username string) (string, error) {
	return s.GenerateToken(profileID, username, s.accessTTL)
}

// GenerateRefreshToken issues the longer-lived token exchanged for new
// access tokens.
func (s TokenService) GenerateRefreshToken(profileID uuid.UUID, username string) (string, error) {
	return s.GenerateToken(profileID, username, time.Duration(refreshHours)*time.Hour)
}

// ParseToken validates signature and expiry and returns the claims.
// Any failure surfaces as Unauthorized without saying which check
// broke.
func (s TokenService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewUnauthorizedError("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errs.NewUnauthorizedError("could not validate credentials")
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, errs.NewUnauthorizedError("could not validate credentials")
	}
	return claims, nil
}

// ProfileID parses the user id claim back into a uuid.
func (c *Claims) ProfileID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, errs.NewUnauthorizedError("could not validate credentials")
	}
	return id, nil
}
