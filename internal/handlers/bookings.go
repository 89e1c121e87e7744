package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/service"
)

type BookingHandler struct {
	bookings *service.BookingService
	pager    Pager
}

func NewBookingHandler(bookings *service.BookingService, pager Pager) *BookingHandler {
	return &BookingHandler{bookings: bookings, pager: pager}
}

type BookingResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	HotelID      uint      `json:"hotel_id"`
	CheckInDate  string    `json:"check_in_date" format:"date"`
	CheckOutDate string    `json:"check_out_date" format:"date"`
	TotalCost    string    `json:"total_cost" doc:"Nights times the hotel's nightly price"`
	Status       string    `json:"status" enum:"pending,confirmed,cancelled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func bookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		HotelID:      b.HotelID,
		CheckInDate:  formatDate(b.CheckInDate),
		CheckOutDate: formatDate(b.CheckOutDate),
		TotalCost:    money(b.TotalCost),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type BookingHistoryResponse struct {
	ID           uint      `json:"id"`
	BookingID    uint      `json:"booking_id"`
	ChangedByID  uint      `json:"changed_by_id"`
	Event        string    `json:"event" enum:"created,updated"`
	HotelID      uint      `json:"hotel_id"`
	CheckInDate  string    `json:"check_in_date" format:"date"`
	CheckOutDate string    `json:"check_out_date" format:"date"`
	TotalCost    string    `json:"total_cost"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func bookingHistoryResponse(h models.BookingHistory) BookingHistoryResponse {
	return BookingHistoryResponse{
		ID:           h.ID,
		BookingID:    h.BookingID,
		ChangedByID:  h.ChangedByID,
		Event:        string(h.Event),
		HotelID:      h.HotelID,
		CheckInDate:  formatDate(h.CheckInDate),
		CheckOutDate: formatDate(h.CheckOutDate),
		TotalCost:    money(h.TotalCost),
		Status:       string(h.Status),
		CreatedAt:    h.CreatedAt,
	}
}

// BookingBody ignores user_id, status and total_cost if a client sends them.
type BookingBody struct {
	_            struct{} `json:"-" additionalProperties:"true"`
	HotelID      uint     `json:"hotel_id" doc:"Hotel to stay at"`
	CheckInDate  string   `json:"check_in_date" format:"date"`
	CheckOutDate string   `json:"check_out_date" format:"date"`
}

func (b BookingBody) input() (service.BookingInput, error) {
	in, err := parseDate("check_in_date", b.CheckInDate)
	if err != nil {
		return service.BookingInput{}, err
	}
	out, err := parseDate("check_out_date", b.CheckOutDate)
	if err != nil {
		return service.BookingInput{}, err
	}
	return service.BookingInput{HotelID: b.HotelID, CheckInDate: in, CheckOutDate: out}, nil
}

type BookingPatchBody struct {
	_            struct{} `json:"-" additionalProperties:"true"`
	HotelID      *uint    `json:"hotel_id,omitempty"`
	CheckInDate  *string  `json:"check_in_date,omitempty" format:"date"`
	CheckOutDate *string  `json:"check_out_date,omitempty" format:"date"`
	Status       *string  `json:"status,omitempty" enum:"pending,confirmed,cancelled"`
}

func (b BookingPatchBody) patch() (service.BookingPatch, error) {
	p := service.BookingPatch{HotelID: b.HotelID}
	if b.CheckInDate != nil {
		in, err := parseDate("check_in_date", *b.CheckInDate)
		if err != nil {
			return p, err
		}
		p.CheckInDate = &in
	}
	if b.CheckOutDate != nil {
		out, err := parseDate("check_out_date", *b.CheckOutDate)
		if err != nil {
			return p, err
		}
		p.CheckOutDate = &out
	}
	if b.Status != nil {
		status := models.BookingStatus(*b.Status)
		p.Status = &status
	}
	return p, nil
}

type BookingListInput struct {
	ListQuery
	Status  string `query:"status" doc:"pending, confirmed or cancelled"`
	HotelID string `query:"hotel_id" doc:"Only bookings at this hotel"`
}

type BookingHistoryInput struct {
	IDPath
	ListQuery
}

type BookingCreateInput struct {
	Body BookingBody
}

type BookingReplaceInput struct {
	IDPath
	Body BookingBody
}

type BookingPatchInput struct {
	IDPath
	Body BookingPatchBody
}

func (h *BookingHandler) Register(api huma.API) {
	tag := tagged("Bookings")
	huma.Get(api, "/bookings", h.list, tag, secured)
	huma.Post(api, "/bookings", h.create, tag, created, secured)
	huma.Get(api, "/bookings/{id}", h.get, tag, secured)
	huma.Put(api, "/bookings/{id}", h.replace, tag, secured)
	huma.Patch(api, "/bookings/{id}", h.patch, tag, secured)
	huma.Delete(api, "/bookings/{id}", h.delete, tag, noContent, secured)
	huma.Get(api, "/bookings/{id}/history", h.history, tag, secured)
}

func (h *BookingHandler) list(ctx context.Context, in *BookingListInput) (*ListOutput[BookingResponse], error) {
	params := in.params(h.pager, filters("status", in.Status, "hotel_id", in.HotelID))
	page, err := h.bookings.List(ctx, auth.ActorFrom(ctx), params)
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, bookingResponse), nil
}

func (h *BookingHandler) get(ctx context.Context, in *IDPath) (*ItemOutput[BookingResponse], error) {
	b, err := h.bookings.Get(ctx, auth.ActorFrom(ctx), in.ID)
	if err != nil {
		return nil, humaError(err)
	}
	return item(bookingResponse(*b)), nil
}

func (h *BookingHandler) create(ctx context.Context, in *BookingCreateInput) (*ItemOutput[BookingResponse], error) {
	input, err := in.Body.input()
	if err != nil {
		return nil, humaError(err)
	}
	b, err := h.bookings.Create(ctx, auth.ActorFrom(ctx), input)
	if err != nil {
		return nil, humaError(err)
	}
	return item(bookingResponse(*b)), nil
}

// replace sets hotel and dates; the status only changes through PATCH.
func (h *BookingHandler) replace(ctx context.Context, in *BookingReplaceInput) (*ItemOutput[BookingResponse], error) {
	input, err := in.Body.input()
	if err != nil {
		return nil, humaError(err)
	}
	patch := service.BookingPatch{
		HotelID:      &input.HotelID,
		CheckInDate:  &input.CheckInDate,
		CheckOutDate: &input.CheckOutDate,
	}
	b, err := h.bookings.Update(ctx, auth.ActorFrom(ctx), in.ID, patch)
	if err != nil {
		return nil, humaError(err)
	}
	return item(bookingResponse(*b)), nil
}

func (h *BookingHandler) patch(ctx context.Context, in *BookingPatchInput) (*ItemOutput[BookingResponse], error) {
	patch, err := in.Body.patch()
	if err != nil {
		return nil, humaError(err)
	}
	b, err := h.bookings.Update(ctx, auth.ActorFrom(ctx), in.ID, patch)
	if err != nil {
		return nil, humaError(err)
	}
	return item(bookingResponse(*b)), nil
}

func (h *BookingHandler) delete(ctx context.Context, in *IDPath) (*struct{}, error) {
	if err := h.bookings.Delete(ctx, auth.ActorFrom(ctx), in.ID); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}

func (h *BookingHandler) history(ctx context.Context, in *BookingHistoryInput) (*ListOutput[BookingHistoryResponse], error) {
	page, err := h.bookings.History(ctx, auth.ActorFrom(ctx), in.ID, in.params(h.pager, nil))
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, bookingHistoryResponse), nil
}
