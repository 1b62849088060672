package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signature, expiry and kind mismatch alike.
// Callers must not be able to distinguish why verification failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Kind tells what a signed token may be used for. An access token must never
// be accepted where a refresh token is required, and vice versa.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the identity embedded in every signed token.
type Claims struct {
	AccountID string
	Email     string
}

// Service issues and verifies signed, time-bound identity tokens.
type Service interface {
	IssueAccess(claims Claims) (string, error)
	IssueRefresh(claims Claims) (string, error)
	Verify(tokenStr string, expected Kind) (Claims, error)
	Refresh(refreshToken string) (string, error)
}

type Config struct {
	Secret     string `validate:"required"`
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type JWT struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

var _ Service = (*JWT)(nil)

func NewJWT(conf Config) (*JWT, error) {
	if err := validator.Validate(conf); err != nil {
		return nil, fmt.Errorf("token service config error: %w", err)
	}

	if conf.AccessTTL == 0 {
		conf.AccessTTL = DefaultAccessTTL
	}

	if conf.RefreshTTL == 0 {
		conf.RefreshTTL = DefaultRefreshTTL
	}

	return &JWT{
		secret:     []byte(conf.Secret),
		accessTTL:  conf.AccessTTL,
		refreshTTL: conf.RefreshTTL,
	}, nil
}

// jwtClaims is the wire payload: {sub, email, kind, iat, exp}.
type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Kind  Kind   `json:"kind"`
}

func (j *JWT) IssueAccess(claims Claims) (string, error) {
	return j.issue(claims, KindAccess, j.accessTTL)
}

func (j *JWT) IssueRefresh(claims Claims) (string, error) {
	return j.issue(claims, KindRefresh, j.refreshTTL)
}

func (j *JWT) issue(claims Claims, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: claims.Email,
		Kind:  kind,
	})

	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("cannot sign token: %w", err)
	}

	return signed, nil
}

func (j *JWT) Verify(tokenStr string, expected Kind) (Claims, error) {
	parsed := &jwtClaims{}

	tok, err := jwt.ParseWithClaims(tokenStr, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	// Strict kind check: a leaked refresh token must not work as an access
	// token, and vice versa.
	if parsed.Kind != expected {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		AccountID: parsed.Subject,
		Email:     parsed.Email,
	}, nil
}

func (j *JWT) Refresh(refreshToken string) (string, error) {
	claims, err := j.Verify(refreshToken, KindRefresh)
	if err != nil {
		return "", err
	}

	return j.IssueAccess(claims)
}
