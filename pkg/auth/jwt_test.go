package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, secret string, exp time.Duration) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     secret,
		Issuer:     "decision-engine-test",
		Expiration: exp,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests", 15*time.Minute)

	tokenString, err := svc.GenerateToken("replay-cli", []string{RoleOperator, RoleAnalyst})
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "replay-cli", claims.ClientID)
	assert.Equal(t, "replay-cli", claims.Subject)
	assert.Equal(t, "decision-engine-test", claims.Issuer)
	assert.Equal(t, []string{RoleOperator, RoleAnalyst}, claims.Roles)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests", -time.Hour)

	tokenString, err := svc.GenerateToken("c", []string{RoleOperator})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1 := newTestJWTService(t, "secret-one", time.Minute)
	svc2 := newTestJWTService(t, "secret-two", time.Minute)

	tokenString, err := svc1.GenerateToken("c", nil)
	require.NoError(t, err)

	_, err = svc2.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	issuer := newTestJWTService(t, "shared", time.Minute)
	other, err := NewJWTService(JWTConfig{Secret: "shared", Issuer: "someone-else"})
	require.NoError(t, err)

	tokenString, err := issuer.GenerateToken("c", nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestRSAValidationOnly(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	svc, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	_, err = svc.GenerateToken("c", nil)
	assert.Error(t, err)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
		ClientID:         "upstream",
		Roles:            []string{RoleAnalyst},
	}).SignedString(key)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(RoleAnalyst))

	hsToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ClientID: "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(hsToken)
	assert.Error(t, err)
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
	assert.False(t, JWTConfig{}.Enabled())
	assert.True(t, JWTConfig{Secret: "s"}.Enabled())
}

func TestHasRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleAdmin, RoleAnalyst}}

	assert.True(t, claims.HasRole(RoleAdmin))
	assert.True(t, claims.HasRole(RoleAnalyst))
	assert.False(t, claims.HasRole(RoleOperator))
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	expected := &Claims{ClientID: "c", Roles: []string{RoleOperator}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), expected))
	require.True(t, ok)
	assert.Same(t, expected, got)
}
