package service

import (
	"context"

	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
	"gorm.io/gorm"
)

var siteQuery = store.QuerySpec{
	Filters: map[string]store.Filter{
		"region_or_city": store.StringFilter("region_or_city"),
	},
	Search: []string{"name", "description", "history", "region_or_city"},
	Ordering: map[string]string{
		"name":       "name",
		"created_at": "created_at",
	},
}

type SiteInput struct {
	Name           string
	Description    string
	History        string
	RegionOrCity   string
	GPSCoordinates *string
	OpeningHours   string
	Images         []string
}

// SitePatch changes only its non-nil fields.
type SitePatch struct {
	Name           *string
	Description    *string
	History        *string
	RegionOrCity   *string
	GPSCoordinates **string
	OpeningHours   *string
	Images         *[]string
}

func (in SiteInput) Patch() SitePatch {
	return SitePatch{
		Name:           &in.Name,
		Description:    &in.Description,
		History:        &in.History,
		RegionOrCity:   &in.RegionOrCity,
		GPSCoordinates: &in.GPSCoordinates,
		OpeningHours:   &in.OpeningHours,
		Images:         &in.Images,
	}
}

func (p SitePatch) apply(s *models.TouristSite) {
	setIf(&s.Name, p.Name)
	setIf(&s.Description, p.Description)
	setIf(&s.History, p.History)
	setIf(&s.RegionOrCity, p.RegionOrCity)
	setIf(&s.GPSCoordinates, p.GPSCoordinates)
	setIf(&s.OpeningHours, p.OpeningHours)
	if p.Images != nil {
		s.Images = images(*p.Images)
	}
}

type SiteService struct {
	store *store.Store
}

func NewSiteService(st *store.Store) *SiteService {
	return &SiteService{store: st}
}

func (s *SiteService) List(ctx context.Context, actor policy.Actor, params store.ListParams) (*store.Page[models.TouristSite], error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Sites.List(ctx, siteQuery, params)
}

func (s *SiteService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.TouristSite, error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Sites.Get(ctx, id)
}

func (s *SiteService) Create(ctx context.Context, actor policy.Actor, in SiteInput) (*models.TouristSite, error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	site := &models.TouristSite{}
	in.Patch().apply(site)
	if err := validateSite(site); err != nil {
		return nil, err
	}
	if err := s.store.Sites.Create(ctx, site, nil); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *SiteService) Update(ctx context.Context, actor policy.Actor, id uint, patch SitePatch) (*models.TouristSite, error) {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	return s.store.Sites.Mutate(ctx, id, func(_ *gorm.DB, site *models.TouristSite) error {
		patch.apply(site)
		return validateSite(site)
	})
}

// Delete removes the site together with its hotels, their bookings and
// every review and favorite pointing at it.
func (s *SiteService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Authorize(policy.AdminOrReadOnly, actor, policy.Write, nil); err != nil {
		return err
	}
	return s.store.Sites.Delete(ctx, id, nil)
}

func validateSite(site *models.TouristSite) error {
	return requireText("name", site.Name)
}
