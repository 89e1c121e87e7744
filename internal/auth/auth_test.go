package auth

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/tourism-api/internal/config"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*AuthHandler, *store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(store.Models()...))

	st := store.New(db)
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	}
	return NewAuthHandler(cfg, st), st
}

func createUser(t *testing.T, st *store.Store, email, password string, active bool) models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	u := models.User{Email: email, PasswordHash: hash, Role: models.RoleUser, IsActive: active}
	require.NoError(t, st.Users.Create(context.Background(), &u, nil))
	return u
}

func TestLogin(t *testing.T) {
	h, st := setupAuth(t)
	ctx := context.Background()
	user := createUser(t, st, "ada@example.com", "analytical", true)
	createUser(t, st, "gone@example.com", "analytical", false)

	pair, err := h.Login(ctx, " ada@EXAMPLE.com", "analytical")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	claims, err := h.parse(pair.Access, accessTokenType)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = h.parse(pair.Refresh, accessTokenType)
	assert.ErrorIs(t, err, ErrInvalidToken)

	tests := []struct {
		name, email, password string
	}{
		{"WrongPassword", "ada@example.com", "difference"},
		{"UnknownEmail", "nobody@example.com", "analytical"},
		{"Inactive", "gone@example.com", "analytical"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestRefreshRotates(t *testing.T) {
	h, st := setupAuth(t)
	ctx := context.Background()
	createUser(t, st, "ada@example.com", "analytical", true)

	first, err := h.Login(ctx, "ada@example.com", "analytical")
	require.NoError(t, err)

	second, err := h.Refresh(ctx, first.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, first.Refresh, second.Refresh)

	_, err = h.Refresh(ctx, first.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = h.Refresh(ctx, second.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	var stored int64
	require.NoError(t, st.DB.Model(&models.RefreshToken{}).Count(&stored).Error)
	assert.EqualValues(t, 1, stored)
}

func TestRevoke(t *testing.T) {
	h, st := setupAuth(t)
	ctx := context.Background()
	createUser(t, st, "ada@example.com", "analytical", true)

	pair, err := h.Login(ctx, "ada@example.com", "analytical")
	require.NoError(t, err)
	require.NoError(t, h.Revoke(ctx, pair.Refresh))

	_, err = h.Refresh(ctx, pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRejectsForeignSignature(t *testing.T) {
	h, _ := setupAuth(t)

	claims := Claims{UserID: 1, TokenType: accessTokenType, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = h.parse(forged, accessTokenType)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "John.Doe@example.com", NormalizeEmail("  John.Doe@EXAMPLE.COM "))
	assert.Equal(t, "no-at-sign", NormalizeEmail("no-at-sign"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, CheckPassword(hash, "secret"))
	assert.False(t, CheckPassword(hash, "Secret"))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}
