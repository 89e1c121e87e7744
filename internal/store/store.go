package store

import (
	"context"

	"github.com/gdg-garage/tourism-api/internal/models"
	"gorm.io/gorm"
)

// Store groups the repositories of every entity over one database handle.
type Store struct {
	DB            *gorm.DB
	Users         *Repository[models.User]
	Sites         *Repository[models.TouristSite]
	Hotels        *Repository[models.Hotel]
	Bookings      *Repository[models.Booking]
	Reviews       *Repository[models.Review]
	Favorites     *Repository[models.Favorite]
	RefreshTokens *Repository[models.RefreshToken]
	History       *Repository[models.BookingHistory]
}

func New(db *gorm.DB) *Store {
	return &Store{
		DB:            db,
		Users:         NewRepository[models.User](db, "user").WithCascade(cascadeUsers),
		Sites:         NewRepository[models.TouristSite](db, "tourist site").WithCascade(cascadeSites),
		Hotels:        NewRepository[models.Hotel](db, "hotel").WithCascade(cascadeHotels),
		Bookings:      NewRepository[models.Booking](db, "booking").WithCascade(cascadeBookings),
		Reviews:       NewRepository[models.Review](db, "review"),
		Favorites:     NewRepository[models.Favorite](db, "favorite"),
		RefreshTokens: NewRepository[models.RefreshToken](db, "refresh token"),
		History:       NewRepository[models.BookingHistory](db, "booking history"),
	}
}

// Models lists every table the store manages, in migration order.
func Models() []any {
	return []any{
		&models.User{},
		&models.TouristSite{},
		&models.Hotel{},
		&models.Booking{},
		&models.BookingHistory{},
		&models.Review{},
		&models.Favorite{},
		&models.RefreshToken{},
	}
}

// Transaction runs fn with a store bound to a single transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
