package utils // package utils provides helpers for session tokens and OTP codes

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Token validation errors. Handlers collapse both into a generic 401 so
// callers cannot distinguish an expired session from a forged one.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessToken represents a signed JWT session token along with its
// expiry. The Token field contains the compact JWT string sent in the
// Authorization header when calling protected endpoints. Tokens are
// self-contained: no session row exists server-side and no refresh
// mechanism is offered, so an expired token means re-authenticating
// through the OTP flow.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the validated payload of a session token: the identity the
// rest of the request pipeline treats as the authenticated principal.
type Claims struct {
	UserID uint64
	Email  string
}

// NewAccessToken builds and signs an HS256 JWT for a user. The claim set
// carries user_id and email alongside the standard exp and iat claims;
// expiry is now + ttlMin minutes in UTC.
func NewAccessToken(secret string, userID uint64, email string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     exp.Unix(),
		"iat":     time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a compact token
// string and returns the embedded claims. It returns ErrTokenExpired
// when the token's exp claim is in the past and ErrTokenInvalid for any
// other failure: bad signature, unexpected algorithm, malformed payload
// or missing claims.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC to prevent
		// algorithm-substitution tricks.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	uid, ok := mc["user_id"].(float64) // JSON numbers decode as float64
	if !ok || uid <= 0 {
		return Claims{}, ErrTokenInvalid
	}
	email, ok := mc["email"].(string)
	if !ok || email == "" {
		return Claims{}, ErrTokenInvalid
	}
	return Claims{UserID: uint64(uid), Email: email}, nil
}
