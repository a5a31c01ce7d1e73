package token

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func makeToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(payload)) + ".sig"
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIsExpiredHonoursLeeway(t *testing.T) {
	exp := int64(1_900_000_000)
	tok := makeToken(fmt.Sprintf(`{"exp":%d}`, exp))
	expAt := time.Unix(exp, 0)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before", expAt.Add(-time.Hour), false},
		{"just outside leeway", expAt.Add(-ExpiryLeeway - time.Millisecond), false},
		{"at leeway boundary", expAt.Add(-ExpiryLeeway), true},
		{"inside leeway", expAt.Add(-time.Second), true},
		{"after exp", expAt.Add(time.Minute), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec := NewCodec(8, fixedClock(tc.now))
			require.Equal(t, tc.want, codec.IsExpired(tok))
		})
	}
}

func TestIsExpiredTreatsBadTokensAsExpired(t *testing.T) {
	codec := NewCodec(8, fixedClock(time.Unix(0, 0)))

	require.True(t, codec.IsExpired(""))
	require.True(t, codec.IsExpired("not-a-jwt"))
	require.True(t, codec.IsExpired("a.!!!.c"))
	require.True(t, codec.IsExpired(makeToken(`{"sub":"S001"}`)))
	require.True(t, codec.IsExpired(makeToken(`{"exp":"soon"}`)))
	require.True(t, codec.IsExpired(makeToken(`[1,2,3]`)))
}

func TestDecodeClaims(t *testing.T) {
	codec := NewCodec(8, nil)
	tok := makeToken(`{"sub":"42","employee_id":"S00116","role":"admin","exp":1900000000}`)

	claims, ok := codec.DecodeClaims(tok)
	require.True(t, ok)
	require.Equal(t, "42", claims.Subject())
	require.Equal(t, "admin", claims.String("role"))
	require.Equal(t, "", claims.String("missing"))

	exp, ok := claims.ExpiresAt()
	require.True(t, ok)
	require.Equal(t, int64(1900000000), exp.Unix())
}

func TestDecodeClaimsAcceptsPaddingAndStandardAlphabet(t *testing.T) {
	payload := `{"name":"??>","exp":1900000000}`
	padded := base64.StdEncoding.EncodeToString([]byte(payload))
	tok := "e30." + padded + ".sig"

	claims, ok := NewCodec(8, nil).DecodeClaims(tok)
	require.True(t, ok)
	require.Equal(t, "??>", claims.String("name"))
}

func TestDecodeClaimsReturnsIndependentCopies(t *testing.T) {
	codec := NewCodec(8, nil)
	tok := makeToken(`{"role":"user"}`)

	first, ok := codec.DecodeClaims(tok)
	require.True(t, ok)
	first["role"] = "admin"

	second, ok := codec.DecodeClaims(tok)
	require.True(t, ok)
	require.Equal(t, "user", second.String("role"))
}

func TestDecodeClaimsMalformed(t *testing.T) {
	codec := NewCodec(8, nil)
	for _, tok := range []string{"", "abc", "a.b@d.c", "a." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".c"} {
		_, ok := codec.DecodeClaims(tok)
		require.False(t, ok, "token %q", tok)
	}
}
