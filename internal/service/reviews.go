package service

import (
	"context"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
	"gorm.io/gorm"
)

const (
	minRating = 1
	maxRating = 5
)

var reviewQuery = store.QuerySpec{
	Filters: map[string]store.Filter{
		"site_id":  store.UintFilter("site_id"),
		"hotel_id": store.UintFilter("hotel_id"),
		"rating":   store.IntFilter("rating"),
	},
	Search: []string{"comment"},
	Ordering: map[string]string{
		"created_at": "created_at",
		"rating":     "rating",
	},
}

// ReviewInput may reference a site, a hotel, both or neither.
type ReviewInput struct {
	SiteID  *uint
	HotelID *uint
	Rating  int
	Comment string
}

type ReviewPatch struct {
	SiteID  **uint
	HotelID **uint
	Rating  *int
	Comment *string
}

type ReviewService struct {
	store *store.Store
}

func NewReviewService(st *store.Store) *ReviewService {
	return &ReviewService{store: st}
}

func (s *ReviewService) List(ctx context.Context, actor policy.Actor, params store.ListParams) (*store.Page[models.Review], error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Reviews.List(ctx, reviewQuery, params, ownerScope(actor)...)
}

func (s *ReviewService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.Review, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	r, err := s.store.Reviews.Get(ctx, id)
	if err != nil {
		return nil, conceal(actor, err, s.store.Reviews.ErrNotFound())
	}
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, *r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Create(ctx context.Context, actor policy.Actor, in ReviewInput) (*models.Review, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	review := &models.Review{
		UserID:  actor.ID,
		SiteID:  in.SiteID,
		HotelID: in.HotelID,
		Rating:  in.Rating,
		Comment: in.Comment,
	}
	err := s.store.Reviews.Create(ctx, review, func(tx *gorm.DB, r *models.Review) error {
		return s.validate(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actor policy.Actor, id uint, patch ReviewPatch) (*models.Review, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	r, err := s.store.Reviews.Mutate(ctx, id, func(tx *gorm.DB, r *models.Review) error {
		if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, *r); err != nil {
			return err
		}
		setIf(&r.SiteID, patch.SiteID)
		setIf(&r.HotelID, patch.HotelID)
		setIf(&r.Rating, patch.Rating)
		setIf(&r.Comment, patch.Comment)
		return s.validate(ctx, tx, r)
	})
	if err != nil {
		return nil, conceal(actor, err, s.store.Reviews.ErrNotFound())
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return err
	}
	err := s.store.Reviews.Delete(ctx, id, func(r *models.Review) error {
		return policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, *r)
	})
	return conceal(actor, err, s.store.Reviews.ErrNotFound())
}

func (s *ReviewService) validate(ctx context.Context, tx *gorm.DB, r *models.Review) error {
	if r.Rating < minRating || r.Rating > maxRating {
		return apperr.Newf(apperr.Validation, "rating must be between %d and %d", minRating, maxRating)
	}
	if r.SiteID != nil {
		if _, err := s.store.Sites.In(tx).Get(ctx, *r.SiteID); err != nil {
			return err
		}
	}
	if r.HotelID != nil {
		if _, err := s.store.Hotels.In(tx).Get(ctx, *r.HotelID); err != nil {
			return err
		}
	}
	return nil
}
