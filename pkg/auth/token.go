package auth

import (
	"strconv"
	"time"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const invalidTokenMessage = "Invalid or expired token."

// Identity is what a token asserts about its bearer.
type Identity struct {
	UserID   int
	Username string
}

// JWTClaims represents the claims in a JWT token. The subject carries the
// user id.
type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-limited identity tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

// NewTokenService builds a token service for an HMAC algorithm (HS256, HS384
// or HS512).
func NewTokenService(secret, algorithm string, expiry time.Duration) (*TokenService, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		expiry: expiry,
	}, nil
}

// Issue signs a token for identity that expires after the configured expiry.
// A zero or negative expiry yields a token that is already expired.
func (s *TokenService) Issue(identity Identity) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(identity.UserID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signed, nil
}

// Validate checks the signature, the algorithm and the expiry of a token and
// returns the identity it carries. Every failure is an Unauthorized.
func (s *TokenService) Validate(tokenString string) (Identity, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil || !token.Valid {
		return Identity{}, errcodes.Unauthorized(invalidTokenMessage)
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 || claims.Username == "" {
		return Identity{}, errcodes.Unauthorized(invalidTokenMessage)
	}

	return Identity{UserID: userID, Username: claims.Username}, nil
}
