package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
	pager   Pager
}

func NewReviewHandler(reviews *service.ReviewService, pager Pager) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, pager: pager}
}

type ReviewBody struct {
	_       struct{} `json:"-" additionalProperties:"true"`
	SiteID  *uint    `json:"site_id,omitempty" doc:"Reviewed tourist site"`
	HotelID *uint    `json:"hotel_id,omitempty" doc:"Reviewed hotel"`
	Rating  int      `json:"rating" minimum:"1" maximum:"5"`
	Comment string   `json:"comment,omitempty"`
}

func (b ReviewBody) input() service.ReviewInput {
	return service.ReviewInput{
		SiteID:  b.SiteID,
		HotelID: b.HotelID,
		Rating:  b.Rating,
		Comment: b.Comment,
	}
}

type ReviewPatchBody struct {
	_       struct{} `json:"-" additionalProperties:"true"`
	SiteID  *uint    `json:"site_id,omitempty"`
	HotelID *uint    `json:"hotel_id,omitempty"`
	Rating  *int     `json:"rating,omitempty" minimum:"1" maximum:"5"`
	Comment *string  `json:"comment,omitempty"`
}

func (b ReviewPatchBody) patch() service.ReviewPatch {
	p := service.ReviewPatch{Rating: b.Rating, Comment: b.Comment}
	if b.SiteID != nil {
		p.SiteID = &b.SiteID
	}
	if b.HotelID != nil {
		p.HotelID = &b.HotelID
	}
	return p
}

type ReviewListInput struct {
	ListQuery
	SiteID  string `query:"site_id"`
	HotelID string `query:"hotel_id"`
	Rating  string `query:"rating"`
}

type ReviewCreateInput struct {
	Body ReviewBody
}

type ReviewReplaceInput struct {
	IDPath
	Body ReviewBody
}

type ReviewPatchInput struct {
	IDPath
	Body ReviewPatchBody
}

func (h *ReviewHandler) Register(api huma.API) {
	tag := tagged("Reviews")
	huma.Get(api, "/reviews", h.list, tag, secured)
	huma.Post(api, "/reviews", h.create, tag, created, secured)
	huma.Get(api, "/reviews/{id}", h.get, tag, secured)
	huma.Put(api, "/reviews/{id}", h.replace, tag, secured)
	huma.Patch(api, "/reviews/{id}", h.patch, tag, secured)
	huma.Delete(api, "/reviews/{id}", h.delete, tag, noContent, secured)
}

func (h *ReviewHandler) list(ctx context.Context, in *ReviewListInput) (*ListOutput[models.Review], error) {
	params := in.params(h.pager, filters(
		"site_id", in.SiteID,
		"hotel_id", in.HotelID,
		"rating", in.Rating,
	))
	page, err := h.reviews.List(ctx, auth.ActorFrom(ctx), params)
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, same[models.Review]), nil
}

func (h *ReviewHandler) get(ctx context.Context, in *IDPath) (*ItemOutput[models.Review], error) {
	r, err := h.reviews.Get(ctx, auth.ActorFrom(ctx), in.ID)
	if err != nil {
		return nil, humaError(err)
	}
	return item(*r), nil
}

func (h *ReviewHandler) create(ctx context.Context, in *ReviewCreateInput) (*ItemOutput[models.Review], error) {
	r, err := h.reviews.Create(ctx, auth.ActorFrom(ctx), in.Body.input())
	if err != nil {
		return nil, humaError(err)
	}
	return item(*r), nil
}

// replace clears a site or hotel reference the body leaves out.
func (h *ReviewHandler) replace(ctx context.Context, in *ReviewReplaceInput) (*ItemOutput[models.Review], error) {
	body := in.Body
	patch := service.ReviewPatch{
		SiteID:  &body.SiteID,
		HotelID: &body.HotelID,
		Rating:  &body.Rating,
		Comment: &body.Comment,
	}
	r, err := h.reviews.Update(ctx, auth.ActorFrom(ctx), in.ID, patch)
	if err != nil {
		return nil, humaError(err)
	}
	return item(*r), nil
}

func (h *ReviewHandler) patch(ctx context.Context, in *ReviewPatchInput) (*ItemOutput[models.Review], error) {
	r, err := h.reviews.Update(ctx, auth.ActorFrom(ctx), in.ID, in.Body.patch())
	if err != nil {
		return nil, humaError(err)
	}
	return item(*r), nil
}

func (h *ReviewHandler) delete(ctx context.Context, in *IDPath) (*struct{}, error) {
	if err := h.reviews.Delete(ctx, auth.ActorFrom(ctx), in.ID); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}
