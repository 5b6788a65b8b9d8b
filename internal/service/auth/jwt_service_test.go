package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kheyfetsdan/wordsaveriii/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	userID := uuid.New()

	svc := NewTestJWTService(testSecret, lifetime, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, accessTokenType, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	userID := uuid.New()

	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		now     time.Time
		wantErr error
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				tok, err := NewTestJWTService(testSecret, lifetime, at(fixedTime)).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now: fixedTime.Add(30 * time.Minute),
		},
		{
			name: "within clock skew after expiry",
			token: func(t *testing.T) string {
				tok, err := NewTestJWTService(testSecret, lifetime, at(fixedTime)).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now: fixedTime.Add(lifetime + time.Minute),
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := NewTestJWTService(testSecret, lifetime, at(fixedTime)).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime.Add(2 * lifetime),
			wantErr: ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := NewTestJWTService("wrong-secret-that-is-long-enough-for-testing", lifetime, at(fixedTime)).
					GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed",
			token:   func(t *testing.T) string { return "not-a-jwt" },
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID:    userID,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime,
			wantErr: ErrWrongTokenType,
		},
		{
			name: "unexpected signing method",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{UserID: userID, TokenType: accessTokenType}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewTestJWTService(testSecret, lifetime, at(tt.now))
			claims, err := svc.ValidateToken(context.Background(), tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(string(hash), "secret1"))
	assert.ErrorIs(t, v.Compare(string(hash), "secret2"), bcrypt.ErrMismatchedHashAndPassword)
}
