package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(secret string) *Codec {
	return NewCodec([]byte(secret), TTLs{
		Identity:      time.Hour,
		PasswordReset: 15 * time.Minute,
		PasswordSet:   24 * time.Hour,
	})
}

func TestSignAndVerify_Identity(t *testing.T) {
	t.Parallel()

	c := newTestCodec("super-secret")
	in := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
		Email:            "a@x.com",
		PhoneNo:          "+15550100",
		Role:             models.RoleVendor,
	}

	tok, err := c.Sign(in, KindIdentity)
	require.NoError(t, err)

	got, err := c.Verify(tok, KindIdentity)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got.Subject)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "+15550100", got.PhoneNo)
	assert.Equal(t, models.RoleVendor, got.Role)
	assert.Equal(t, KindIdentity, got.Kind)
	require.NotNil(t, got.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt.Time, 5*time.Second)
}

func TestSign_TwoTokensDifferButBothVerify(t *testing.T) {
	t.Parallel()

	c := newTestCodec("k")
	claims := Claims{Email: "a@x.com", UserID: "7"}

	t1, err := c.Sign(claims, KindPasswordReset)
	require.NoError(t, err)
	t2, err := c.Sign(claims, KindPasswordReset)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	_, err = c.Verify(t1, KindPasswordReset)
	require.NoError(t, err)
	_, err = c.Verify(t2, KindPasswordReset)
	require.NoError(t, err)
}

func TestVerify_KindsAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	c := newTestCodec("k")
	kinds := []Kind{KindIdentity, KindPasswordReset, KindPasswordSet}

	for _, signed := range kinds {
		tok, err := c.Sign(Claims{UserID: "1", Email: "a@x.com"}, signed)
		require.NoError(t, err)

		for _, expected := range kinds {
			_, err := c.Verify(tok, expected)
			if signed == expected {
				assert.NoError(t, err, "%s as %s", signed, expected)
			} else {
				assert.ErrorIs(t, err, common.ErrInvalidToken, "%s as %s", signed, expected)
			}
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	c := newTestCodec("secret")
	c.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := c.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}, KindIdentity)
	require.NoError(t, err)

	c.now = time.Now
	_, err = c.Verify(tok, KindIdentity)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.NotErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestCodec("right-secret").Sign(Claims{UserID: "u2"}, KindPasswordSet)
	require.NoError(t, err)

	_, err = newTestCodec("wrong-secret").Verify(tok, KindPasswordSet)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.NotErrorIs(t, err, common.ErrTokenMalformed)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestCodec("k")
	for _, in := range []string{"", "not.a.jwt", "abc"} {
		_, err := c.Verify(in, KindIdentity)
		assert.ErrorIs(t, err, common.ErrTokenMalformed, "input %q", in)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	c := newTestCodec("k")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{KindIdentity.audience()},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Kind: KindIdentity,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = c.Verify(tok, KindIdentity)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	c := newTestCodec("k")
	tok, err := c.Sign(Claims{Role: models.RoleDefaultUser}, KindIdentity)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, err := newTestCodec("other").Sign(Claims{Role: models.RoleSuperAdmin}, KindIdentity)
	require.NoError(t, err)
	parts[1] = strings.Split(forged, ".")[1]

	_, err = c.Verify(strings.Join(parts, "."), KindIdentity)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUnknownKind(t *testing.T) {
	t.Parallel()

	c := newTestCodec("k")
	_, err := c.Sign(Claims{}, Kind("refresh"))
	assert.Error(t, err)
	_, err = c.Verify("x.y.z", Kind("refresh"))
	assert.Error(t, err)
}
