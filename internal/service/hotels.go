package service

import (
	"context"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hotelQuery = store.QuerySpec{
	Filters: map[string]store.Filter{
		"site_id":         store.UintFilter("site_id"),
		"price_per_night": store.DecimalFilter("price_per_night"),
		"availability":    store.BoolFilter("availability"),
	},
	Search: []string{"name", "description", "address"},
	Ordering: map[string]string{
		"price_per_night":    "price_per_night",
		"distance_from_site": "distance_from_site",
	},
}

type HotelInput struct {
	SiteID           uint
	Name             string
	Description      string
	PricePerNight    decimal.Decimal
	DistanceFromSite decimal.Decimal
	Address          string
	Images           []string
	Availability     bool
}

type HotelPatch struct {
	SiteID           *uint
	Name             *string
	Description      *string
	PricePerNight    *decimal.Decimal
	DistanceFromSite *decimal.Decimal
	Address          *string
	Images           *[]string
	Availability     *bool
}

func (in HotelInput) Patch() HotelPatch {
	return HotelPatch{
		SiteID:           &in.SiteID,
		Name:             &in.Name,
		Description:      &in.Description,
		PricePerNight:    &in.PricePerNight,
		DistanceFromSite: &in.DistanceFromSite,
		Address:          &in.Address,
		Images:           &in.Images,
		Availability:     &in.Availability,
	}
}

func (p HotelPatch) apply(h *models.Hotel) {
	setIf(&h.SiteID, p.SiteID)
	setIf(&h.Name, p.Name)
	setIf(&h.Description, p.Description)
	setIf(&h.PricePerNight, p.PricePerNight)
	setIf(&h.DistanceFromSite, p.DistanceFromSite)
	setIf(&h.Address, p.Address)
	setIf(&h.Availability, p.Availability)
	if p.Images != nil {
		h.Images = images(*p.Images)
	}
}

type HotelService struct {
	store *store.Store
}

func NewHotelService(st *store.Store) *HotelService {
	return &HotelService{store: st}
}

func (s *HotelService) List(ctx context.Context, actor policy.Actor, params store.ListParams) (*store.Page[models.Hotel], error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Hotels.List(ctx, hotelQuery, params)
}

func (s *HotelService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.Hotel, error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Hotels.Get(ctx, id)
}

func (s *HotelService) Create(ctx context.Context, actor policy.Actor, in HotelInput) (*models.Hotel, error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	hotel := &models.Hotel{}
	in.Patch().apply(hotel)
	err := s.store.Hotels.Create(ctx, hotel, func(tx *gorm.DB, h *models.Hotel) error {
		return s.validate(ctx, tx, h)
	})
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *HotelService) Update(ctx context.Context, actor policy.Actor, id uint, patch HotelPatch) (*models.Hotel, error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	return s.store.Hotels.Mutate(ctx, id, func(tx *gorm.DB, h *models.Hotel) error {
		patch.apply(h)
		return s.validate(ctx, tx, h)
	})
}

// Delete removes the hotel with its bookings and reviews.
func (s *HotelService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Write, nil); err != nil {
		return err
	}
	return s.store.Hotels.Delete(ctx, id, nil)
}

func (s *HotelService) validate(ctx context.Context, tx *gorm.DB, h *models.Hotel) error {
	if err := requireText("name", h.Name); err != nil {
		return err
	}
	if h.PricePerNight.IsNegative() {
		return apperr.New(apperr.Validation, "price_per_night must not be negative")
	}
	if h.DistanceFromSite.IsNegative() {
		return apperr.New(apperr.Validation, "distance_from_site must not be negative")
	}
	_, err := s.store.Sites.In(tx).Get(ctx, h.SiteID)
	return err
}
