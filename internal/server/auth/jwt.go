// Package auth signs and verifies the bearer tokens issued by the server.
//
// Three kinds of token share one HMAC secret: identity tokens (the session),
// password-reset tokens and password-set tokens. Each kind is bound to its
// own audience, so a token of one kind never verifies as another.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Kind identifies the purpose a token was issued for.
type Kind string

const (
	KindIdentity      Kind = "identity"
	KindPasswordReset Kind = "password_reset"
	KindPasswordSet   Kind = "password_set"
)

const issuer = "bookinggate"

func (k Kind) audience() string {
	return issuer + ":" + string(k)
}

// Claims is the payload of every token kind. Identity tokens carry the
// subject, email, phone and role; reset and set tokens carry email and
// user id.
type Claims struct {
	jwt.RegisteredClaims
	Kind    Kind        `json:"kind"`
	Email   string      `json:"email,omitempty"`
	PhoneNo string      `json:"phoneNo,omitempty"`
	Role    models.Role `json:"role,omitempty"`
	UserID  string      `json:"userId,omitempty"`
}

// TTLs sets the lifetime of each token kind.
type TTLs struct {
	Identity      time.Duration
	PasswordReset time.Duration
	PasswordSet   time.Duration
}

// Codec is safe for concurrent use.
type Codec struct {
	secret []byte
	ttls   TTLs
	now    func() time.Time
}

func NewCodec(secret []byte, ttls TTLs) *Codec {
	return &Codec{secret: secret, ttls: ttls, now: time.Now}
}

func (c *Codec) ttl(kind Kind) (time.Duration, error) {
	switch kind {
	case KindIdentity:
		return c.ttls.Identity, nil
	case KindPasswordReset:
		return c.ttls.PasswordReset, nil
	case KindPasswordSet:
		return c.ttls.PasswordSet, nil
	}
	return 0, fmt.Errorf("unknown token kind %q", kind)
}

// Sign issues a token of the given kind. Issued-at, expiry, audience and a
// random token id are filled in; whatever the caller put there is replaced.
func (c *Codec) Sign(claims Claims, kind Kind) (string, error) {
	ttl, err := c.ttl(kind)
	if err != nil {
		return "", err
	}

	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	now := c.now()
	claims.Kind = kind
	claims.Issuer = issuer
	claims.Audience = jwt.ClaimStrings{kind.audience()}
	claims.ID = jti
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature, expiry and kind. It returns common.ErrTokenExpired
// for an otherwise valid token past its expiry, common.ErrTokenMalformed for
// input that is not a JWT, and common.ErrInvalidToken for everything else.
func (c *Codec) Verify(tokenString string, kind Kind) (*Claims, error) {
	if _, err := c.ttl(kind); err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(kind.audience()),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, common.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		default:
			return nil, common.ErrInvalidToken
		}
	}

	if !token.Valid || claims.Kind != kind {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
