package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(
		"test-secret-key-for-testing-purposes",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService()
	assert.NotNil(t, service)
	assert.Equal(t, 15*time.Minute, service.GetAccessTokenExpiry())
	assert.Equal(t, 7*24*time.Hour, service.GetRefreshTokenExpiry())
}

func TestJWTService_GenerateAccessToken_Success(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateAccessToken("emp-123", "Anna Berg", "AB")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestJWTService_ValidateAccessToken_Valid(t *testing.T) {
	service := newTestJWTService()

	token, _, err := service.GenerateAccessToken("emp-456", "Bo Lund", "BL")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, "emp-456", claims.EmployeeID)
	assert.Equal(t, "Bo Lund", claims.FullName)
	assert.Equal(t, "BL", claims.Initials)
	assert.Equal(t, "emp-456", claims.Subject)
}

func TestJWTService_ValidateAccessToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret", 1*time.Millisecond, 7*24*time.Hour)

	token, _, err := service.GenerateAccessToken("emp-123", "Anna Berg", "AB")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateAccessToken_Invalid(t *testing.T) {
	service := newTestJWTService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"random string", "not-a-valid-token"},
		{"malformed JWT", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ValidateAccessToken_WrongSignature(t *testing.T) {
	service1 := NewJWTService("secret-key-1", 15*time.Minute, 7*24*time.Hour)
	service2 := NewJWTService("secret-key-2", 15*time.Minute, 7*24*time.Hour)

	token, _, err := service1.GenerateAccessToken("emp-123", "Anna Berg", "AB")
	require.NoError(t, err)

	claims, err := service2.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateAccessToken_WrongAlgorithm(t *testing.T) {
	service := newTestJWTService()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		EmployeeID: "emp-123",
		FullName:   "Anna Berg",
		Initials:   "AB",
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_GenerateRefreshToken_Success(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateRefreshToken("emp-789")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(8*24*time.Hour)))
}

func TestJWTService_ValidateRefreshToken_Valid(t *testing.T) {
	service := newTestJWTService()

	token, _, err := service.GenerateRefreshToken("emp-refresh-test")
	require.NoError(t, err)

	employeeID, err := service.ValidateRefreshToken(token)

	require.NoError(t, err)
	assert.Equal(t, "emp-refresh-test", employeeID)
}

func TestJWTService_ValidateRefreshToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret", 15*time.Minute, 1*time.Millisecond)

	token, _, err := service.GenerateRefreshToken("emp-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	employeeID, err := service.ValidateRefreshToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Empty(t, employeeID)
}

func TestJWTService_ValidateRefreshToken_WrongSignature(t *testing.T) {
	service1 := NewJWTService("secret-key-1", 15*time.Minute, 7*24*time.Hour)
	service2 := NewJWTService("secret-key-2", 15*time.Minute, 7*24*time.Hour)

	token, _, err := service1.GenerateRefreshToken("emp-123")
	require.NoError(t, err)

	employeeID, err := service2.ValidateRefreshToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, employeeID)
}

func TestJWTService_TokensAreDifferent(t *testing.T) {
	service := newTestJWTService()

	accessToken, _, err := service.GenerateAccessToken("emp-123", "Anna Berg", "AB")
	require.NoError(t, err)

	refreshToken, _, err := service.GenerateRefreshToken("emp-123")
	require.NoError(t, err)

	assert.NotEqual(t, accessToken, refreshToken)
}
