package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for every credential failure. Callers never
// learn which check rejected the token.
var ErrUnauthorized = errors.New("unauthorized")

const bearerPrefix = "Bearer "

// AuthenticatedUser is the caller identity taken from a verified token.
type AuthenticatedUser struct {
	UserID int64
}

type tokenClaims struct {
	UserID *int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 bearer tokens against a shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// VerifyHeader validates a raw Authorization header value.
func (v *Verifier) VerifyHeader(header string) (AuthenticatedUser, error) {
	if header == "" || !utf8.ValidString(header) {
		return AuthenticatedUser{}, ErrUnauthorized
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return AuthenticatedUser{}, ErrUnauthorized
	}

	return v.VerifyToken(token)
}

// VerifyToken validates the signature and claims of a compact JWT.
// The returned error wraps ErrUnauthorized with the underlying cause.
func (v *Verifier) VerifyToken(tokenString string) (AuthenticatedUser, error) {
	claims := new(tokenClaims)
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return AuthenticatedUser{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.UserID == nil {
		return AuthenticatedUser{}, fmt.Errorf("%w: user_id not found", ErrUnauthorized)
	}

	return AuthenticatedUser{UserID: *claims.UserID}, nil
}
