package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/erazemk/konzola/internal/model"
)

// Claims are the console session claims. The backend bearer token travels
// sealed so the browser cannot read it from the cookie.
type Claims struct {
	UserID       int64    `json:"user_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	CompanyID    *int64   `json:"company_id,omitempty"`
	SealedBearer string   `json:"sbt"`
	jwt.RegisteredClaims
}

// TokenExpiry is the default session lifetime.
const TokenExpiry = 7 * 24 * time.Hour

// GenerateToken creates a session JWT for user with a unique JTI. The
// backend token is sealed with key. A non-positive ttl uses TokenExpiry.
func GenerateToken(secret string, key *[32]byte, user model.User, backendToken string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = TokenExpiry
	}

	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("generating JTI: %w", err)
	}

	sealed, err := Seal(key, []byte(backendToken))
	if err != nil {
		return "", fmt.Errorf("sealing backend token: %w", err)
	}

	now := time.Now()
	claims := Claims{
		UserID:       user.ID,
		Name:         user.DisplayName(),
		Email:        user.Email,
		Roles:        user.Roles,
		CompanyID:    user.CompanyID,
		SealedBearer: sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// BackendToken unseals the backend bearer token carried by the claims.
func (c *Claims) BackendToken(key *[32]byte) (string, error) {
	plain, err := Open(key, c.SealedBearer)
	if err != nil {
		return "", fmt.Errorf("opening backend token: %w", err)
	}
	return string(plain), nil
}

// User rebuilds the operator's account from the claims.
func (c *Claims) User() model.User {
	return model.User{
		ID:        c.UserID,
		FullName:  c.Name,
		Email:     c.Email,
		Roles:     model.Roles(c.Roles),
		CompanyID: c.CompanyID,
	}
}

// generateJTI creates a random token ID.
func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
