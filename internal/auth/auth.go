package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/config"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

var (
	ErrInvalidCredentials = apperr.New(apperr.Unauthenticated, "no active account found with the given credentials")
	ErrInvalidToken       = apperr.New(apperr.Unauthenticated, "token is invalid or expired")
)

type Claims struct {
	UserID    uint        `json:"user_id"`
	Role      models.Role `json:"role,omitempty"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

type AuthHandler struct {
	store *store.Store
	cfg   *config.Config
}

func NewAuthHandler(cfg *config.Config, st *store.Store) *AuthHandler {
	return &AuthHandler{store: st, cfg: cfg}
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login checks the credentials and issues a fresh token pair.
func (h *AuthHandler) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var user models.User
	err := h.store.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil || !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return h.issuePair(ctx, h.store, user)
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (h *AuthHandler) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := h.parse(refreshToken, refreshTokenType)
	if err != nil {
		return nil, err
	}

	var pair *TokenPair
	err = h.store.Transaction(ctx, func(tx *store.Store) error {
		res := tx.DB.Where("token_id = ? AND user_id = ?", claims.ID, claims.UserID).Delete(&models.RefreshToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidToken
		}
		user, err := tx.Users.Get(ctx, claims.UserID)
		if err != nil || !user.IsActive {
			return ErrInvalidToken
		}
		pair, err = h.issuePair(ctx, tx, *user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Revoke forgets a refresh token. Unknown tokens are ignored.
func (h *AuthHandler) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := h.parse(refreshToken, refreshTokenType)
	if err != nil {
		return err
	}
	return h.store.DB.WithContext(ctx).Where("token_id = ?", claims.ID).Delete(&models.RefreshToken{}).Error
}

// GenerateToken signs an access token for user.
func (h *AuthHandler) GenerateToken(user models.User) (string, error) {
	return h.sign(Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.cfg.AccessTokenTTL)),
		},
	})
}

func (h *AuthHandler) issuePair(ctx context.Context, st *store.Store, user models.User) (*TokenPair, error) {
	access, err := h.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		UserID:    user.ID,
		TokenID:   uuid.NewString(),
		ExpiresAt: time.Now().Add(h.cfg.RefreshTokenTTL),
	}
	refresh, err := h.sign(Claims{
		UserID:    user.ID,
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        record.TokenID,
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
		},
	})
	if err != nil {
		return nil, err
	}
	if err := st.RefreshTokens.Create(ctx, &record, nil); err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (h *AuthHandler) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func (h *AuthHandler) parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NormalizeEmail trims the address and lowercases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"Account email"`
		Password string `json:"password" minLength:"1" doc:"Account password"`
	}
}

type TokenResponse struct {
	Body TokenPair
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*TokenResponse, error) {
	pair, err := h.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, humaError(err)
	}
	return &TokenResponse{Body: *pair}, nil
}

type RefreshRequest struct {
	Body struct {
		Refresh string `json:"refresh" minLength:"1" doc:"Refresh token"`
	}
}

func (h *AuthHandler) HandleRefresh(ctx context.Context, input *RefreshRequest) (*TokenResponse, error) {
	pair, err := h.Refresh(ctx, input.Body.Refresh)
	if err != nil {
		return nil, humaError(err)
	}
	return &TokenResponse{Body: *pair}, nil
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *RefreshRequest) (*struct{}, error) {
	if err := h.Revoke(ctx, input.Body.Refresh); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}

func humaError(err error) error {
	if errors.Is(err, apperr.ErrUnauthenticated) {
		return huma.Error401Unauthorized(apperr.MessageOf(err))
	}
	return huma.Error500InternalServerError("Failed to issue tokens")
}
