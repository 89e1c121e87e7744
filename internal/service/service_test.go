package service

import (
	"context"
	"sync"
	"testing"

	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/notifier"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifier.BookingEvent
}

func (r *recordingNotifier) NotifyBooking(event notifier.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

type fixture struct {
	st       *store.Store
	notifier *recordingNotifier

	alice, bob, admin, root models.User
	site                    models.TouristSite
	hotel                   models.Hotel
}

func (f *fixture) as(u models.User) policy.Actor {
	return policy.ActorFor(u)
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(store.Models()...))

	f := &fixture{st: store.New(db), notifier: &recordingNotifier{}}
	ctx := context.Background()

	f.alice = f.user(t, "alice@example.com", models.RoleUser)
	f.bob = f.user(t, "bob@example.com", models.RoleUser)
	f.admin = f.user(t, "admin@example.com", models.RoleAdmin)
	f.root = f.user(t, "root@example.com", models.RoleSuperuser)

	f.site = models.TouristSite{Name: "Valley of the Kings", RegionOrCity: "Luxor"}
	require.NoError(t, f.st.Sites.Create(ctx, &f.site, nil))
	f.hotel = models.Hotel{
		SiteID:        f.site.ID,
		Name:          "Nile Palace",
		PricePerNight: decimal.RequireFromString("100.00"),
		Availability:  true,
	}
	require.NoError(t, f.st.Hotels.Create(ctx, &f.hotel, nil))
	return f
}

func (f *fixture) user(t *testing.T, email string, role models.Role) models.User {
	t.Helper()
	u := models.User{Email: email, FullName: email, PasswordHash: "x", Role: role, IsActive: true}
	require.NoError(t, f.st.Users.Create(context.Background(), &u, nil))
	return u
}
