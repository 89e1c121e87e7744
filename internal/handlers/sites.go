package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/service"
)

type SiteHandler struct {
	sites *service.SiteService
	pager Pager
}

func NewSiteHandler(sites *service.SiteService, pager Pager) *SiteHandler {
	return &SiteHandler{sites: sites, pager: pager}
}

type SiteBody struct {
	_              struct{} `json:"-" additionalProperties:"true"`
	Name           string   `json:"name" minLength:"1" maxLength:"255"`
	Description    string   `json:"description,omitempty"`
	History        string   `json:"history,omitempty"`
	RegionOrCity   string   `json:"region_or_city,omitempty" maxLength:"150"`
	GPSCoordinates *string  `json:"gps_coordinates,omitempty" maxLength:"200"`
	OpeningHours   string   `json:"opening_hours,omitempty" maxLength:"150"`
	Images         []string `json:"images,omitempty" doc:"Ordered image URLs"`
}

func (b SiteBody) input() service.SiteInput {
	return service.SiteInput{
		Name:           b.Name,
		Description:    b.Description,
		History:        b.History,
		RegionOrCity:   b.RegionOrCity,
		GPSCoordinates: b.GPSCoordinates,
		OpeningHours:   b.OpeningHours,
		Images:         b.Images,
	}
}

type SitePatchBody struct {
	_              struct{}  `json:"-" additionalProperties:"true"`
	Name           *string   `json:"name,omitempty" minLength:"1" maxLength:"255"`
	Description    *string   `json:"description,omitempty"`
	History        *string   `json:"history,omitempty"`
	RegionOrCity   *string   `json:"region_or_city,omitempty" maxLength:"150"`
	GPSCoordinates *string   `json:"gps_coordinates,omitempty" maxLength:"200"`
	OpeningHours   *string   `json:"opening_hours,omitempty" maxLength:"150"`
	Images         *[]string `json:"images,omitempty"`
}

func (b SitePatchBody) patch() service.SitePatch {
	p := service.SitePatch{
		Name:         b.Name,
		Description:  b.Description,
		History:      b.History,
		RegionOrCity: b.RegionOrCity,
		OpeningHours: b.OpeningHours,
		Images:       b.Images,
	}
	if b.GPSCoordinates != nil {
		p.GPSCoordinates = &b.GPSCoordinates
	}
	return p
}

type SiteListInput struct {
	ListQuery
	RegionOrCity string `query:"region_or_city" doc:"Exact region or city"`
}

type SiteCreateInput struct {
	Body SiteBody
}

type SiteReplaceInput struct {
	IDPath
	Body SiteBody
}

type SitePatchInput struct {
	IDPath
	Body SitePatchBody
}

func (h *SiteHandler) Register(api huma.API) {
	tag := tagged("Tourist sites")
	huma.Get(api, "/tourist-sites", h.list, tag)
	huma.Post(api, "/tourist-sites", h.create, tag, created, secured)
	huma.Get(api, "/tourist-sites/{id}", h.get, tag)
	huma.Put(api, "/tourist-sites/{id}", h.replace, tag, secured)
	huma.Patch(api, "/tourist-sites/{id}", h.patch, tag, secured)
	huma.Delete(api, "/tourist-sites/{id}", h.delete, tag, noContent, secured)
}

func (h *SiteHandler) list(ctx context.Context, in *SiteListInput) (*ListOutput[models.TouristSite], error) {
	params := in.params(h.pager, filters("region_or_city", in.RegionOrCity))
	page, err := h.sites.List(ctx, auth.ActorFrom(ctx), params)
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, same[models.TouristSite]), nil
}

func (h *SiteHandler) get(ctx context.Context, in *IDPath) (*ItemOutput[models.TouristSite], error) {
	site, err := h.sites.Get(ctx, auth.ActorFrom(ctx), in.ID)
	if err != nil {
		return nil, humaError(err)
	}
	return item(*site), nil
}

func (h *SiteHandler) create(ctx context.Context, in *SiteCreateInput) (*ItemOutput[models.TouristSite], error) {
	site, err := h.sites.Create(ctx, auth.ActorFrom(ctx), in.Body.input())
	if err != nil {
		return nil, humaError(err)
	}
	return item(*site), nil
}

func (h *SiteHandler) replace(ctx context.Context, in *SiteReplaceInput) (*ItemOutput[models.TouristSite], error) {
	site, err := h.sites.Update(ctx, auth.ActorFrom(ctx), in.ID, in.Body.input().Patch())
	if err != nil {
		return nil, humaError(err)
	}
	return item(*site), nil
}

func (h *SiteHandler) patch(ctx context.Context, in *SitePatchInput) (*ItemOutput[models.TouristSite], error) {
	site, err := h.sites.Update(ctx, auth.ActorFrom(ctx), in.ID, in.Body.patch())
	if err != nil {
		return nil, humaError(err)
	}
	return item(*site), nil
}

func (h *SiteHandler) delete(ctx context.Context, in *IDPath) (*struct{}, error) {
	if err := h.sites.Delete(ctx, auth.ActorFrom(ctx), in.ID); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}
