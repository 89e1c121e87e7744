package service

import (
	"context"
	"log"
	"time"

	"github.com/gdg-garage/tourism-api/internal/booking"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/notifier"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
	"gorm.io/gorm"
)

var bookingQuery = store.QuerySpec{
	Filters: map[string]store.Filter{
		"status":   store.StringFilter("status"),
		"hotel_id": store.UintFilter("hotel_id"),
	},
	Ordering: map[string]string{
		"created_at":    "created_at",
		"check_in_date": "check_in_date",
		"total_cost":    "total_cost",
	},
}

// BookingInput carries what a client may choose. The owner, the status and
// the total cost are never taken from it.
type BookingInput struct {
	HotelID      uint
	CheckInDate  time.Time
	CheckOutDate time.Time
}

type BookingPatch struct {
	HotelID      *uint
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	Status       *models.BookingStatus
}

type BookingService struct {
	store    *store.Store
	notifier notifier.Notifier
}

// NewBookingService builds the service. n may be nil.
func NewBookingService(st *store.Store, n notifier.Notifier) *BookingService {
	return &BookingService{store: st, notifier: n}
}

func (s *BookingService) List(ctx context.Context, actor policy.Actor, params store.ListParams) (*store.Page[models.Booking], error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Bookings.List(ctx, bookingQuery, params, ownerScope(actor)...)
}

func (s *BookingService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.Booking, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	b, err := s.store.Bookings.Get(ctx, id)
	if err != nil {
		return nil, conceal(actor, err, s.store.Bookings.ErrNotFound())
	}
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, *b); err != nil {
		return nil, err
	}
	return b, nil
}

// Create books a stay for the actor. The booking starts pending and its
// cost is derived from the hotel price.
func (s *BookingService) Create(ctx context.Context, actor policy.Actor, in BookingInput) (*models.Booking, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return nil, err
	}

	var hotel *models.Hotel
	b := &models.Booking{
		UserID:       actor.ID,
		HotelID:      in.HotelID,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		Status:       models.BookingPending,
	}
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		err := tx.Bookings.Create(ctx, b, func(_ *gorm.DB, b *models.Booking) error {
			var err error
			hotel, err = tx.Hotels.Get(ctx, b.HotelID)
			if err != nil {
				return err
			}
			if !hotel.Availability {
				return booking.ErrHotelUnavailable
			}
			return booking.Prepare(b, *hotel)
		})
		if err != nil {
			return err
		}
		snapshot := b.Snapshot(models.BookingEventCreated, actor.ID)
		return tx.History.Create(ctx, &snapshot, nil)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifier.BookingEvent{Kind: notifier.BookingCreated, Hotel: *hotel, Booking: *b})
	return b, nil
}

// Update applies patch and re-derives the total cost. Ownership is checked
// against the row as locked inside the write transaction.
func (s *BookingService) Update(ctx context.Context, actor policy.Actor, id uint, patch BookingPatch) (*models.Booking, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return nil, err
	}

	var (
		hotel    *models.Hotel
		previous models.BookingStatus
	)
	b, err := s.store.Bookings.Mutate(ctx, id, func(tx *gorm.DB, b *models.Booking) error {
		if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, *b); err != nil {
			return err
		}
		previous = b.Status
		if patch.Status != nil {
			if err := booking.Transition(b.Status, *patch.Status); err != nil {
				return err
			}
			b.Status = *patch.Status
		}
		moved := patch.HotelID != nil && *patch.HotelID != b.HotelID
		setIf(&b.HotelID, patch.HotelID)
		setIf(&b.CheckInDate, patch.CheckInDate)
		setIf(&b.CheckOutDate, patch.CheckOutDate)

		var err error
		hotel, err = s.store.Hotels.In(tx).Get(ctx, b.HotelID)
		if err != nil {
			return err
		}
		if moved && !hotel.Availability {
			return booking.ErrHotelUnavailable
		}
		if err := booking.Prepare(b, *hotel); err != nil {
			return err
		}
		snapshot := b.Snapshot(models.BookingEventUpdated, actor.ID)
		return s.store.History.In(tx).Create(ctx, &snapshot, nil)
	})
	if err != nil {
		return nil, conceal(actor, err, s.store.Bookings.ErrNotFound())
	}

	if b.Status != previous {
		s.notify(ctx, notifier.BookingEvent{
			Kind:           notifier.BookingStatusChanged,
			Hotel:          *hotel,
			Booking:        *b,
			PreviousStatus: previous,
		})
	}
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return err
	}
	err := s.store.Bookings.Delete(ctx, id, func(b *models.Booking) error {
		return policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, *b)
	})
	return conceal(actor, err, s.store.Bookings.ErrNotFound())
}

var historyQuery = store.QuerySpec{
	Ordering: map[string]string{"created_at": "created_at"},
}

// History lists the snapshots of a booking, oldest first.
func (s *BookingService) History(ctx context.Context, actor policy.Actor, id uint, params store.ListParams) (*store.Page[models.BookingHistory], error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	byBooking := func(db *gorm.DB) *gorm.DB { return db.Where("booking_id = ?", id) }
	return s.store.History.List(ctx, historyQuery, params, byBooking)
}

// notify runs after the commit; a failed notification never fails the
// request.
func (s *BookingService) notify(ctx context.Context, event notifier.BookingEvent) {
	if s.notifier == nil {
		return
	}
	user, err := s.store.Users.Get(ctx, event.Booking.UserID)
	if err != nil {
		log.Printf("Booking notification skipped: %v", err)
		return
	}
	event.User = *user
	if err := s.notifier.NotifyBooking(event); err != nil {
		log.Printf("Failed to send booking notification: %v", err)
	}
}
