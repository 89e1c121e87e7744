package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/service"
)

type FavoriteHandler struct {
	favorites *service.FavoriteService
	pager     Pager
}

func NewFavoriteHandler(favorites *service.FavoriteService, pager Pager) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, pager: pager}
}

type FavoriteBody struct {
	_      struct{} `json:"-" additionalProperties:"true"`
	SiteID uint     `json:"site_id" doc:"Tourist site to keep"`
}

type FavoriteListInput struct {
	ListQuery
	SiteID string `query:"site_id"`
}

type FavoriteCreateInput struct {
	Body FavoriteBody
}

type FavoriteUpdateInput struct {
	IDPath
	Body FavoriteBody
}

func (h *FavoriteHandler) Register(api huma.API) {
	tag := tagged("Favorites")
	huma.Get(api, "/favorites", h.list, tag, secured)
	huma.Post(api, "/favorites", h.create, tag, created, secured)
	huma.Get(api, "/favorites/{id}", h.get, tag, secured)
	huma.Put(api, "/favorites/{id}", h.update, tag, secured)
	huma.Patch(api, "/favorites/{id}", h.update, tag, secured)
	huma.Delete(api, "/favorites/{id}", h.delete, tag, noContent, secured)
}

func (h *FavoriteHandler) list(ctx context.Context, in *FavoriteListInput) (*ListOutput[models.Favorite], error) {
	page, err := h.favorites.List(ctx, auth.ActorFrom(ctx), in.params(h.pager, filters("site_id", in.SiteID)))
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, same[models.Favorite]), nil
}

func (h *FavoriteHandler) get(ctx context.Context, in *IDPath) (*ItemOutput[models.Favorite], error) {
	f, err := h.favorites.Get(ctx, auth.ActorFrom(ctx), in.ID)
	if err != nil {
		return nil, humaError(err)
	}
	return item(*f), nil
}

func (h *FavoriteHandler) create(ctx context.Context, in *FavoriteCreateInput) (*ItemOutput[models.Favorite], error) {
	f, err := h.favorites.Create(ctx, auth.ActorFrom(ctx), in.Body.SiteID)
	if err != nil {
		return nil, humaError(err)
	}
	return item(*f), nil
}

func (h *FavoriteHandler) update(ctx context.Context, in *FavoriteUpdateInput) (*ItemOutput[models.Favorite], error) {
	f, err := h.favorites.Update(ctx, auth.ActorFrom(ctx), in.ID, in.Body.SiteID)
	if err != nil {
		return nil, humaError(err)
	}
	return item(*f), nil
}

func (h *FavoriteHandler) delete(ctx context.Context, in *IDPath) (*struct{}, error) {
	if err := h.favorites.Delete(ctx, auth.ActorFrom(ctx), in.ID); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}
