package token

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-service/app/domain"
	"product-service/app/utils/logger"
)

const testSecret = "this-is-a-valid-access-token-secret-32-chars"

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCodec(t *testing.T, ttl time.Duration) (*JWTCodec, *fakeClock) {
	t.Helper()

	var buf bytes.Buffer
	log, err := logger.NewWithWriter("debug", &buf)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := NewJWTCodec(JWTConfig{Secret: testSecret, AccessTTL: ttl}, log, WithClock(clock.Now))
	require.NoError(t, err)
	return codec, clock
}

func TestNewJWTCodec(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter("info", &buf)
	require.NoError(t, err)

	tests := []struct {
		name    string
		cfg     JWTConfig
		wantErr string
	}{
		{name: "valid", cfg: JWTConfig{Secret: testSecret, AccessTTL: time.Minute}},
		{name: "zero ttl allowed", cfg: JWTConfig{Secret: testSecret}},
		{name: "missing secret", cfg: JWTConfig{AccessTTL: time.Minute}, wantErr: "secret is required"},
		{name: "negative ttl", cfg: JWTConfig{Secret: testSecret, AccessTTL: -time.Second}, wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewJWTCodec(tt.cfg, log)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, codec)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, codec)
		})
	}
}

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec, _ := newTestCodec(t, 15*time.Minute)

	issued, err := codec.Issue("user@example.com", 15*time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, domain.TokenTypeBearer, issued.Type)
	assert.Equal(t, int64(900), issued.ExpiresInSeconds())

	subject, err := codec.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestJWTCodec_IssueAccess(t *testing.T) {
	codec, _ := newTestCodec(t, 30*time.Minute)

	issued, err := codec.IssueAccess("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, issued.ExpiresIn)

	claims := &accessClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(issued.Token, claims)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.Equal(time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)))
}

func TestJWTCodec_UniqueTokenIDs(t *testing.T) {
	codec, _ := newTestCodec(t, time.Minute)

	first, err := codec.IssueAccess("user@example.com")
	require.NoError(t, err)
	second, err := codec.IssueAccess("user@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestJWTCodec_Issue_InvalidInput(t *testing.T) {
	codec, _ := newTestCodec(t, time.Minute)

	_, err := codec.Issue("", time.Minute)
	assert.Error(t, err)

	_, err = codec.Issue("user@example.com", -time.Minute)
	assert.Error(t, err)
}

func TestJWTCodec_Verify_Expired(t *testing.T) {
	codec, clock := newTestCodec(t, time.Second)

	issued, err := codec.IssueAccess("user@example.com")
	require.NoError(t, err)

	subject, err := codec.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)

	clock.Advance(2 * time.Second)

	_, err = codec.Verify(issued.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.NotErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestJWTCodec_Verify_ZeroTTLExpiresImmediately(t *testing.T) {
	codec, _ := newTestCodec(t, 0)

	issued, err := codec.IssueAccess("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), issued.ExpiresIn)

	_, err = codec.Verify(issued.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestJWTCodec_Verify_Rejections(t *testing.T) {
	codec, clock := newTestCodec(t, 15*time.Minute)

	issued, err := codec.IssueAccess("user@example.com")
	require.NoError(t, err)

	now := clock.Now()
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user@example.com",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("another-secret-that-is-long-enough"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "tampered signature", token: flipSignatureByte(issued.Token)},
		{name: "missing subject", token: noSubject},
		{name: "missing expiry", token: noExpiry},
		{name: "unexpected algorithm", token: wrongAlg},
		{name: "foreign secret", token: otherSecret},
		{name: "unsigned", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := codec.Verify(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrTokenMalformed)
			assert.Empty(t, subject)
		})
	}
}

// flipSignatureByte alters one character in the middle of the signature
// segment so the decoded MAC differs.
func flipSignatureByte(raw string) string {
	idx := strings.LastIndex(raw, ".") + (len(raw)-strings.LastIndex(raw, "."))/2
	replacement := byte('A')
	if raw[idx] == 'A' {
		replacement = 'B'
	}
	return raw[:idx] + string(replacement) + raw[idx+1:]
}
