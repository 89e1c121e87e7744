package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/config"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/service"
	"github.com/gdg-garage/tourism-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	router http.Handler
	st     *store.Store
	auth   *auth.AuthHandler

	alice, bob, admin models.User
	site              models.TouristSite
	hotel             models.Hotel
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(store.Models()...))

	st := store.New(db)
	cfg := &config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour, RefreshTokenTTL: time.Hour}
	authHandler := auth.NewAuthHandler(cfg, st)
	pager := Pager{Default: 10, Max: 50}
	users := service.NewUserService(st)

	r := chi.NewRouter()
	RegisterRoutes(r, authHandler,
		NewSiteHandler(service.NewSiteService(st), pager),
		NewHotelHandler(service.NewHotelService(st), pager),
		NewBookingHandler(service.NewBookingService(st, nil), pager),
		NewReviewHandler(service.NewReviewService(st), pager),
		NewFavoriteHandler(service.NewFavoriteService(st), pager),
		NewUserHandler(users, pager),
	)

	s := &testServer{router: r, st: st, auth: authHandler}
	ctx := context.Background()
	s.alice = s.user(t, users, "alice@example.com", models.RoleUser)
	s.bob = s.user(t, users, "bob@example.com", models.RoleUser)
	s.admin = s.user(t, users, "admin@example.com", models.RoleAdmin)

	s.site = models.TouristSite{Name: "Petra", RegionOrCity: "Ma'an"}
	require.NoError(t, st.Sites.Create(ctx, &s.site, nil))
	s.hotel = models.Hotel{SiteID: s.site.ID, Name: "Petra Moon", PricePerNight: decimal.RequireFromString("100.00"), DistanceFromSite: decimal.RequireFromString("0.5"), Availability: true}
	require.NoError(t, st.Hotels.Create(ctx, &s.hotel, nil))
	return s
}

func (s *testServer) user(t *testing.T, users *service.UserService, email string, role models.Role) models.User {
	t.Helper()
	u, err := users.Register(context.Background(), service.Registration{Email: email, Password: "password"})
	require.NoError(t, err)
	if role != models.RoleUser {
		u, err = s.st.Users.Mutate(context.Background(), u.ID, func(_ *gorm.DB, u *models.User) error {
			u.Role = role
			return nil
		})
		require.NoError(t, err)
	}
	return *u
}

func (s *testServer) token(t *testing.T, u models.User) string {
	t.Helper()
	token, err := s.auth.GenerateToken(u)
	require.NoError(t, err)
	return token
}

// do sends body as JSON and decodes a JSON response into a map.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 {
		_ = json.Unmarshal(rr.Body.Bytes(), &out)
	}
	return rr.Code, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRegistrationAndLogin(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/user-registration/", "", map[string]any{
		"email":         "carol@example.com",
		"full_name":     "Carol",
		"password":      "hunter22",
		"date_of_birth": "1990-05-17",
		"is_superuser":  true,
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "carol@example.com", body["email"])
	assert.Equal(t, "1990-05-17", body["date_of_birth"])
	assert.Equal(t, false, body["is_superuser"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	code, _ = s.do(t, http.MethodPost, "/user-registration/", "", map[string]any{"email": "carol@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	for _, path := range []string{"/token/", "/user-login/"} {
		code, body = s.do(t, http.MethodPost, path, "", map[string]any{"email": "carol@example.com", "password": "hunter22"})
		require.Equal(t, http.StatusOK, code, path)
		assert.NotEmpty(t, body["access"])
		assert.NotEmpty(t, body["refresh"])
	}

	code, body = s.do(t, http.MethodPost, "/token/refresh/", "", map[string]any{"refresh": body["refresh"]})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/logout/", "", map[string]any{"refresh": body["refresh"]})
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = s.do(t, http.MethodPost, "/token/", "", map[string]any{"email": "carol@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	alice, bob, admin := s.token(t, s.alice), s.token(t, s.bob), s.token(t, s.admin)

	code, _ := s.do(t, http.MethodPost, "/bookings/", "", map[string]any{"hotel_id": s.hotel.ID, "check_in_date": "2024-01-01", "check_out_date": "2024-01-04"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := s.do(t, http.MethodPost, "/bookings/", alice, map[string]any{
		"hotel_id":       s.hotel.ID,
		"check_in_date":  "2024-01-01",
		"check_out_date": "2024-01-04",
		"user_id":        s.bob.ID,
		"total_cost":     "1.00",
		"status":         "confirmed",
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "300.00", body["total_cost"])
	assert.Equal(t, "pending", body["status"])
	assert.EqualValues(t, s.alice.ID, body["user_id"])
	assert.Equal(t, "2024-01-04", body["check_out_date"])
	path := fmt.Sprintf("/bookings/%v/", body["id"])

	code, _ = s.do(t, http.MethodPost, "/bookings/", alice, map[string]any{"hotel_id": s.hotel.ID, "check_in_date": "2024-02-01", "check_out_date": "2024-02-01"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/bookings/", alice, map[string]any{"hotel_id": s.hotel.ID, "check_in_date": "01/02/2024", "check_out_date": "2024-02-03"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodGet, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodGet, "/bookings/999/", bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodGet, "/bookings/999/", admin, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodGet, "/bookings/", bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])

	code, body = s.do(t, http.MethodPatch, path, admin, map[string]any{"status": "cancelled"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "cancelled", body["status"])

	code, _ = s.do(t, http.MethodPatch, path, admin, map[string]any{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodGet, path+"history/", alice, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 2, body["count"])

	code, _ = s.do(t, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusNoContent, code)
}

func TestSitesAndHotels(t *testing.T) {
	s := newTestServer(t)
	alice, admin := s.token(t, s.alice), s.token(t, s.admin)

	code, body := s.do(t, http.MethodGet, "/tourist-sites/", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 10, body["page_size"])
	assert.Len(t, body["results"], 1)

	code, _ = s.do(t, http.MethodPost, "/tourist-sites/", alice, map[string]any{"name": "Wadi Rum"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodPost, "/tourist-sites/", "", map[string]any{"name": "Wadi Rum"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(t, http.MethodPost, "/tourist-sites/", admin, map[string]any{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodPost, "/tourist-sites/", admin, map[string]any{"name": "Wadi Rum", "images": []string{"rum.jpg"}})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, []any{"rum.jpg"}, body["images"])

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/hotels/%d", s.hotel.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "100.00", body["price_per_night"])
	assert.Equal(t, "0.50", body["distance_from_site"])

	code, _ = s.do(t, http.MethodGet, "/hotels/999", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPost, "/hotels/", admin, map[string]any{"site_id": s.site.ID, "name": "Cheap", "price_per_night": "abc", "distance_from_site": "1"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodPatch, fmt.Sprintf("/hotels/%d/", s.hotel.ID), admin, map[string]any{"price_per_night": "120.5"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "120.50", body["price_per_night"])
	assert.Equal(t, "Petra Moon", body["name"])

	code, body = s.do(t, http.MethodGet, "/hotels/?availability=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/tourist-sites/%d/", s.site.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, body = s.do(t, http.MethodGet, "/hotels/", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])
}

func TestReviewsAndFavorites(t *testing.T) {
	s := newTestServer(t)
	alice, bob := s.token(t, s.alice), s.token(t, s.bob)

	code, _ := s.do(t, http.MethodPost, "/reviews/", alice, map[string]any{"site_id": s.site.ID, "rating": 7})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := s.do(t, http.MethodPost, "/reviews/", alice, map[string]any{"site_id": s.site.ID, "rating": 5, "comment": "Breathtaking", "user_id": s.bob.ID})
	require.Equal(t, http.StatusCreated, code, body)
	assert.EqualValues(t, s.alice.ID, body["user_id"])

	code, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/reviews/%v/", body["id"]), bob, map[string]any{"rating": 1})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = s.do(t, http.MethodPost, "/favorites/", alice, map[string]any{"site_id": s.site.ID})
	require.Equal(t, http.StatusCreated, code, body)
	code, _ = s.do(t, http.MethodPost, "/favorites/", alice, map[string]any{"site_id": s.site.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.do(t, http.MethodPost, "/favorites/", alice, map[string]any{"site_id": 999})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUsersAndProfile(t *testing.T) {
	s := newTestServer(t)
	alice, admin := s.token(t, s.alice), s.token(t, s.admin)

	code, _ := s.do(t, http.MethodGet, "/users/", alice, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := s.do(t, http.MethodGet, "/users/?role=admin", admin, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 1, body["count"])

	code, body = s.do(t, http.MethodGet, "/user-profile/", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	code, _ = s.do(t, http.MethodPost, "/user-profile/", alice, map[string]any{"email": "eve@example.com", "password": "pw"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/user-profile/%d/", s.alice.ID), alice, map[string]any{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = s.do(t, http.MethodPatch, fmt.Sprintf("/user-profile/%d/", s.alice.ID), alice, map[string]any{"full_name": "Alice Liddell"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Alice Liddell", body["full_name"])

	code, _ = s.do(t, http.MethodGet, fmt.Sprintf("/user-profile/%d/", s.bob.ID), alice, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = s.do(t, http.MethodPost, "/users/", admin, map[string]any{"email": "staff@example.com", "password": "pw", "role": "admin"})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, true, body["is_admin"])
	assert.Equal(t, true, body["is_active"])
}
