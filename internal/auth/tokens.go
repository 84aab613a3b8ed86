package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidsummary/backend/internal/models"
)

var (
	// ErrInvalidToken indicates the bearer token is malformed or its signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the bearer token was valid but is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the payload carried by issued bearer tokens.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and verifies HS256-signed bearer tokens. It keeps no state beyond the
// secret, so there is no revocation: a token is valid until it expires.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer signing with secret and issuing tokens valid for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if secret == "" {
		panic("auth: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithNowFunc overrides the clock. Intended for tests.
func (i *TokenIssuer) WithNowFunc(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Issue signs a token for the given user.
func (i *TokenIssuer) Issue(userID, username string) (models.SessionToken, error) {
	if userID == "" {
		return models.SessionToken{}, errors.New("user id must be provided")
	}

	// JWT NumericDate has whole-second precision.
	now := i.now().UTC()
	expires := now.Add(i.ttl).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("sign token: %w", err)
	}

	return models.SessionToken{Token: signed, ExpiresAt: expires}, nil
}

// Verify checks the signature and expiry of a token and returns the principal it names.
func (i *TokenIssuer) Verify(tokenString string) (Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Principal{}, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: claims.UserID, Username: claims.Username}, nil
}
