package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"alumnihub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenIssuer is the iss claim on every issued token.
	TokenIssuer = "alumnihub-api"
	// TokenAudience is the aud claim on every issued token.
	TokenAudience = "alumnihub-client"
)

var (
	ErrMissingToken  = errors.New("authorization required")
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrInvalidIssuer = errors.New("invalid token issuer")
	ErrInvalidAud    = errors.New("invalid token audience")
	ErrInvalidSubj   = errors.New("invalid subject claim")
)

// TokenClaims is the decoded identity carried by a session token.
type TokenClaims struct {
	UserID    uint
	Email     string
	UserType  models.UserType
	JTI       string
	ExpiresAt time.Time
}

// IssueToken signs an HS256 session token for user valid for ttl.
func IssueToken(secret string, user *models.User, ttl time.Duration) (string, *TokenClaims, error) {
	if secret == "" {
		return "", nil, fmt.Errorf("JWT secret not configured")
	}
	if user == nil || user.ID == 0 {
		return "", nil, fmt.Errorf("cannot issue token without a persisted user")
	}

	now := time.Now()
	out := &TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		UserType:  user.UserType,
		JTI:       fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
		ExpiresAt: now.Add(ttl),
	}

	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"email":    user.Email,
		"userType": string(user.UserType),
		"iss":      TokenIssuer,
		"aud":      TokenAudience,
		"exp":      out.ExpiresAt.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      out.JTI,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, out, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// ParseToken validates signature, expiry, issuer and audience and returns the decoded claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return nil, ErrInvalidIssuer
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != TokenAudience {
		return nil, ErrInvalidAud
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidSubj
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, ErrInvalidSubj
	}

	out := &TokenClaims{UserID: uint(userID)}
	out.Email, _ = claims["email"].(string)
	if ut, ok := claims["userType"].(string); ok {
		out.UserType = models.UserType(ut)
	}
	out.JTI, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
