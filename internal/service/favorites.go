package service

import (
	"context"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
	"gorm.io/gorm"
)

var favoriteQuery = store.QuerySpec{
	Filters: map[string]store.Filter{
		"site_id": store.UintFilter("site_id"),
	},
	Ordering: map[string]string{
		"created_at": "created_at",
	},
}

var ErrAlreadyFavorite = apperr.New(apperr.Validation, "tourist site is already in favorites")

type FavoriteService struct {
	store *store.Store
}

func NewFavoriteService(st *store.Store) *FavoriteService {
	return &FavoriteService{store: st}
}

func (s *FavoriteService) List(ctx context.Context, actor policy.Actor, params store.ListParams) (*store.Page[models.Favorite], error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Favorites.List(ctx, favoriteQuery, params, ownerScope(actor)...)
}

func (s *FavoriteService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.Favorite, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	f, err := s.store.Favorites.Get(ctx, id)
	if err != nil {
		return nil, conceal(actor, err, s.store.Favorites.ErrNotFound())
	}
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, *f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FavoriteService) Create(ctx context.Context, actor policy.Actor, siteID uint) (*models.Favorite, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	fav := &models.Favorite{UserID: actor.ID, SiteID: siteID}
	err := s.store.Favorites.Create(ctx, fav, func(tx *gorm.DB, f *models.Favorite) error {
		return s.validate(ctx, tx, f)
	})
	if err != nil {
		return nil, err
	}
	return fav, nil
}

// Update moves a favorite to another site.
func (s *FavoriteService) Update(ctx context.Context, actor policy.Actor, id uint, siteID uint) (*models.Favorite, error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	f, err := s.store.Favorites.Mutate(ctx, id, func(tx *gorm.DB, f *models.Favorite) error {
		if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, *f); err != nil {
			return err
		}
		if f.SiteID == siteID {
			return nil
		}
		f.SiteID = siteID
		return s.validate(ctx, tx, f)
	})
	if err != nil {
		return nil, conceal(actor, err, s.store.Favorites.ErrNotFound())
	}
	return f, nil
}

func (s *FavoriteService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, nil); err != nil {
		return err
	}
	err := s.store.Favorites.Delete(ctx, id, func(f *models.Favorite) error {
		return policy.Authorize(policy.OwnerOrAdmin, actor, policy.Write, *f)
	})
	return conceal(actor, err, s.store.Favorites.ErrNotFound())
}

func (s *FavoriteService) validate(ctx context.Context, tx *gorm.DB, f *models.Favorite) error {
	if _, err := s.store.Sites.In(tx).Get(ctx, f.SiteID); err != nil {
		return err
	}
	exists, err := s.store.Favorites.In(tx).Exists(ctx, "user_id = ? AND site_id = ?", f.UserID, f.SiteID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFavorite
	}
	return nil
}
