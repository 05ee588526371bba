package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

// CookieName is the cookie the signed credential travels in.
const CookieName = "token"

var ErrInvalidToken = errors.New("invalid token")

// Caller is the identity recovered from a verified credential. It is
// immutable and carries everything the authorization checks need.
type Caller struct {
	UserID int64
	Role   domain.Role
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 credential embedding the user id as subject and
// the role as a custom claim.
func IssueToken(secret string, userID int64, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(userID, 10),
		},
	})

	return token.SignedString([]byte(secret))
}

// VerifyToken checks the signature and validity window of a credential and
// recovers the caller encoded in it. Any failure is reported as ErrInvalidToken.
func VerifyToken(secret string, tokenString string) (Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Caller{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Caller{}, ErrInvalidToken
	}

	return Caller{UserID: userID, Role: domain.Role(claims.Role)}, nil
}
