package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/service"
)

type HotelHandler struct {
	hotels *service.HotelService
	pager  Pager
}

func NewHotelHandler(hotels *service.HotelService, pager Pager) *HotelHandler {
	return &HotelHandler{hotels: hotels, pager: pager}
}

type HotelResponse struct {
	ID               uint      `json:"id"`
	SiteID           uint      `json:"site_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	PricePerNight    string    `json:"price_per_night" doc:"Decimal with two places"`
	DistanceFromSite string    `json:"distance_from_site" doc:"Decimal with two places"`
	Address          string    `json:"address"`
	Images           []string  `json:"images"`
	Availability     bool      `json:"availability"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func hotelResponse(h models.Hotel) HotelResponse {
	return HotelResponse{
		ID:               h.ID,
		SiteID:           h.SiteID,
		Name:             h.Name,
		Description:      h.Description,
		PricePerNight:    money(h.PricePerNight),
		DistanceFromSite: money(h.DistanceFromSite),
		Address:          h.Address,
		Images:           append([]string{}, h.Images...),
		Availability:     h.Availability,
		CreatedAt:        h.CreatedAt,
		UpdatedAt:        h.UpdatedAt,
	}
}

type HotelBody struct {
	_                struct{} `json:"-" additionalProperties:"true"`
	SiteID           uint     `json:"site_id" doc:"Tourist site the hotel belongs to"`
	Name             string   `json:"name" minLength:"1" maxLength:"255"`
	Description      string   `json:"description,omitempty"`
	PricePerNight    string   `json:"price_per_night" example:"120.50"`
	DistanceFromSite string   `json:"distance_from_site" example:"1.25"`
	Address          string   `json:"address,omitempty" maxLength:"255"`
	Images           []string `json:"images,omitempty"`
	Availability     *bool    `json:"availability,omitempty" doc:"Defaults to true"`
}

func (b HotelBody) input() (service.HotelInput, error) {
	price, err := parseDecimal("price_per_night", b.PricePerNight)
	if err != nil {
		return service.HotelInput{}, err
	}
	distance, err := parseDecimal("distance_from_site", b.DistanceFromSite)
	if err != nil {
		return service.HotelInput{}, err
	}
	available := true
	if b.Availability != nil {
		available = *b.Availability
	}
	return service.HotelInput{
		SiteID:           b.SiteID,
		Name:             b.Name,
		Description:      b.Description,
		PricePerNight:    price,
		DistanceFromSite: distance,
		Address:          b.Address,
		Images:           b.Images,
		Availability:     available,
	}, nil
}

type HotelPatchBody struct {
	_                struct{}  `json:"-" additionalProperties:"true"`
	SiteID           *uint     `json:"site_id,omitempty"`
	Name             *string   `json:"name,omitempty" minLength:"1" maxLength:"255"`
	Description      *string   `json:"description,omitempty"`
	PricePerNight    *string   `json:"price_per_night,omitempty"`
	DistanceFromSite *string   `json:"distance_from_site,omitempty"`
	Address          *string   `json:"address,omitempty" maxLength:"255"`
	Images           *[]string `json:"images,omitempty"`
	Availability     *bool     `json:"availability,omitempty"`
}

func (b HotelPatchBody) patch() (service.HotelPatch, error) {
	p := service.HotelPatch{
		SiteID:       b.SiteID,
		Name:         b.Name,
		Description:  b.Description,
		Address:      b.Address,
		Images:       b.Images,
		Availability: b.Availability,
	}
	if b.PricePerNight != nil {
		price, err := parseDecimal("price_per_night", *b.PricePerNight)
		if err != nil {
			return p, err
		}
		p.PricePerNight = &price
	}
	if b.DistanceFromSite != nil {
		distance, err := parseDecimal("distance_from_site", *b.DistanceFromSite)
		if err != nil {
			return p, err
		}
		p.DistanceFromSite = &distance
	}
	return p, nil
}

type HotelListInput struct {
	ListQuery
	SiteID        string `query:"site_id" doc:"Only hotels of this site"`
	PricePerNight string `query:"price_per_night" doc:"Exact nightly price"`
	Availability  string `query:"availability" doc:"true or false"`
}

type HotelCreateInput struct {
	Body HotelBody
}

type HotelReplaceInput struct {
	IDPath
	Body HotelBody
}

type HotelPatchInput struct {
	IDPath
	Body HotelPatchBody
}

func (h *HotelHandler) Register(api huma.API) {
	tag := tagged("Hotels")
	huma.Get(api, "/hotels", h.list, tag)
	huma.Post(api, "/hotels", h.create, tag, created, secured)
	huma.Get(api, "/hotels/{id}", h.get, tag)
	huma.Put(api, "/hotels/{id}", h.replace, tag, secured)
	huma.Patch(api, "/hotels/{id}", h.patch, tag, secured)
	huma.Delete(api, "/hotels/{id}", h.delete, tag, noContent, secured)
}

func (h *HotelHandler) list(ctx context.Context, in *HotelListInput) (*ListOutput[HotelResponse], error) {
	params := in.params(h.pager, filters(
		"site_id", in.SiteID,
		"price_per_night", in.PricePerNight,
		"availability", in.Availability,
	))
	page, err := h.hotels.List(ctx, auth.ActorFrom(ctx), params)
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, hotelResponse), nil
}

func (h *HotelHandler) get(ctx context.Context, in *IDPath) (*ItemOutput[HotelResponse], error) {
	hotel, err := h.hotels.Get(ctx, auth.ActorFrom(ctx), in.ID)
	if err != nil {
		return nil, humaError(err)
	}
	return item(hotelResponse(*hotel)), nil
}

func (h *HotelHandler) create(ctx context.Context, in *HotelCreateInput) (*ItemOutput[HotelResponse], error) {
	input, err := in.Body.input()
	if err != nil {
		return nil, humaError(err)
	}
	hotel, err := h.hotels.Create(ctx, auth.ActorFrom(ctx), input)
	if err != nil {
		return nil, humaError(err)
	}
	return item(hotelResponse(*hotel)), nil
}

func (h *HotelHandler) replace(ctx context.Context, in *HotelReplaceInput) (*ItemOutput[HotelResponse], error) {
	input, err := in.Body.input()
	if err != nil {
		return nil, humaError(err)
	}
	hotel, err := h.hotels.Update(ctx, auth.ActorFrom(ctx), in.ID, input.Patch())
	if err != nil {
		return nil, humaError(err)
	}
	return item(hotelResponse(*hotel)), nil
}

func (h *HotelHandler) patch(ctx context.Context, in *HotelPatchInput) (*ItemOutput[HotelResponse], error) {
	patch, err := in.Body.patch()
	if err != nil {
		return nil, humaError(err)
	}
	hotel, err := h.hotels.Update(ctx, auth.ActorFrom(ctx), in.ID, patch)
	if err != nil {
		return nil, humaError(err)
	}
	return item(hotelResponse(*hotel)), nil
}

func (h *HotelHandler) delete(ctx context.Context, in *IDPath) (*struct{}, error) {
	if err := h.hotels.Delete(ctx, auth.ActorFrom(ctx), in.ID); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}
