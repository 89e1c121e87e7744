package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/service"
)

type UserResponse struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	ProfilePicture *string   `json:"profile_picture"`
	DateOfBirth    *string   `json:"date_of_birth" format:"date"`
	Role           string    `json:"role" enum:"user,admin,superuser"`
	IsAdmin        bool      `json:"is_admin"`
	IsSuperuser    bool      `json:"is_superuser"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func userResponse(u models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
		DateOfBirth:    formatOptionalDate(u.DateOfBirth),
		Role:           string(u.Role),
		IsAdmin:        u.IsAdmin(),
		IsSuperuser:    u.IsSuperuser(),
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// RegistrationBody is the public sign-up form.
type RegistrationBody struct {
	_              struct{} `json:"-" additionalProperties:"true"`
	Email          string   `json:"email" format:"email" maxLength:"254"`
	FullName       string   `json:"full_name,omitempty" maxLength:"255"`
	Password       string   `json:"password" minLength:"1" doc:"Write only"`
	ProfilePicture *string  `json:"profile_picture,omitempty" maxLength:"500"`
	DateOfBirth    *string  `json:"date_of_birth,omitempty" format:"date"`
}

func (b RegistrationBody) registration() (service.Registration, error) {
	reg := service.Registration{
		Email:          b.Email,
		FullName:       b.FullName,
		Password:       b.Password,
		ProfilePicture: b.ProfilePicture,
	}
	if b.DateOfBirth != nil {
		dob, err := parseDate("date_of_birth", *b.DateOfBirth)
		if err != nil {
			return reg, err
		}
		reg.DateOfBirth = &dob
	}
	return reg, nil
}

// UserBody is what an admin sends to create or replace an account.
type UserBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`
	RegistrationBody
	Role     string `json:"role,omitempty" enum:"user,admin,superuser" doc:"Defaults to user"`
	IsActive *bool  `json:"is_active,omitempty" doc:"Defaults to true"`
}

func (b UserBody) input() (service.UserInput, error) {
	reg, err := b.registration()
	if err != nil {
		return service.UserInput{}, err
	}
	in := service.UserInput{Registration: reg, Role: models.Role(b.Role), IsActive: true}
	if b.IsActive != nil {
		in.IsActive = *b.IsActive
	}
	return in, nil
}

type UserPatchBody struct {
	_              struct{} `json:"-" additionalProperties:"true"`
	Email          *string  `json:"email,omitempty" format:"email" maxLength:"254"`
	FullName       *string  `json:"full_name,omitempty" maxLength:"255"`
	Password       *string  `json:"password,omitempty" minLength:"1"`
	ProfilePicture *string  `json:"profile_picture,omitempty" maxLength:"500"`
	DateOfBirth    *string  `json:"date_of_birth,omitempty" format:"date"`
	Role           *string  `json:"role,omitempty" enum:"user,admin,superuser"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

func (b UserPatchBody) patch() (service.UserPatch, error) {
	p := service.UserPatch{
		Email:    b.Email,
		FullName: b.FullName,
		Password: b.Password,
		IsActive: b.IsActive,
	}
	if b.ProfilePicture != nil {
		p.ProfilePicture = &b.ProfilePicture
	}
	if b.DateOfBirth != nil {
		dob, err := parseDate("date_of_birth", *b.DateOfBirth)
		if err != nil {
			return p, err
		}
		ptr := &dob
		p.DateOfBirth = &ptr
	}
	if b.Role != nil {
		role := models.Role(*b.Role)
		p.Role = &role
	}
	return p, nil
}

// replacePatch turns a full body into a patch. Fields an owner may not
// change are only included when the body names them.
func (b UserBody) replacePatch() (service.UserPatch, error) {
	in, err := b.input()
	if err != nil {
		return service.UserPatch{}, err
	}
	p := service.UserPatch{
		Email:          &in.Email,
		FullName:       &in.FullName,
		Password:       &in.Password,
		ProfilePicture: &in.ProfilePicture,
		DateOfBirth:    &in.DateOfBirth,
	}
	if b.Role != "" {
		p.Role = &in.Role
	}
	if b.IsActive != nil {
		p.IsActive = b.IsActive
	}
	return p, nil
}

type UserListInput struct {
	ListQuery
	Role     string `query:"role" enum:"user,admin,superuser"`
	IsActive string `query:"is_active" doc:"true or false"`
}

func (in UserListInput) filterParams() map[string]string {
	return filters("role", in.Role, "is_active", in.IsActive)
}

type UserCreateInput struct {
	Body UserBody
}

type UserReplaceInput struct {
	IDPath
	Body UserBody
}

type UserPatchInput struct {
	IDPath
	Body UserPatchBody
}

type RegistrationInput struct {
	Body RegistrationBody
}

// UserHandler serves the admin user collection, the self-service profile
// and public registration.
type UserHandler struct {
	users *service.UserService
	pager Pager
}

func NewUserHandler(users *service.UserService, pager Pager) *UserHandler {
	return &UserHandler{users: users, pager: pager}
}

func (h *UserHandler) Register(api huma.API) {
	huma.Post(api, "/user-registration", h.register, tagged("Auth"), created)

	admin := tagged("Users")
	huma.Get(api, "/users", h.list, admin, secured)
	huma.Post(api, "/users", h.create, admin, created, secured)
	huma.Get(api, "/users/{id}", h.get, admin, secured)
	huma.Put(api, "/users/{id}", h.replace, admin, secured)
	huma.Patch(api, "/users/{id}", h.patch, admin, secured)
	huma.Delete(api, "/users/{id}", h.delete, admin, noContent, secured)

	profile := tagged("Profile")
	huma.Get(api, "/user-profile", h.listProfiles, profile, secured)
	huma.Post(api, "/user-profile", h.createProfile, profile, created, secured)
	huma.Get(api, "/user-profile/{id}", h.getProfile, profile, secured)
	huma.Put(api, "/user-profile/{id}", h.replaceProfile, profile, secured)
	huma.Patch(api, "/user-profile/{id}", h.patchProfile, profile, secured)
	huma.Delete(api, "/user-profile/{id}", h.deleteProfile, profile, noContent, secured)
}

func (h *UserHandler) register(ctx context.Context, in *RegistrationInput) (*ItemOutput[UserResponse], error) {
	reg, err := in.Body.registration()
	if err != nil {
		return nil, humaError(err)
	}
	u, err := h.users.Register(ctx, reg)
	if err != nil {
		return nil, humaError(err)
	}
	return item(userResponse(*u)), nil
}

func (h *UserHandler) list(ctx context.Context, in *UserListInput) (*ListOutput[UserResponse], error) {
	page, err := h.users.List(ctx, auth.ActorFrom(ctx), in.params(h.pager, in.filterParams()))
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, userResponse), nil
}

func (h *UserHandler) get(ctx context.Context, in *IDPath) (*ItemOutput[UserResponse], error) {
	return h.result(h.users.Get(ctx, auth.ActorFrom(ctx), in.ID))
}

func (h *UserHandler) create(ctx context.Context, in *UserCreateInput) (*ItemOutput[UserResponse], error) {
	input, err := in.Body.input()
	if err != nil {
		return nil, humaError(err)
	}
	return h.result(h.users.Create(ctx, auth.ActorFrom(ctx), input))
}

func (h *UserHandler) replace(ctx context.Context, in *UserReplaceInput) (*ItemOutput[UserResponse], error) {
	patch, err := in.Body.replacePatch()
	if err != nil {
		return nil, humaError(err)
	}
	return h.result(h.users.Update(ctx, auth.ActorFrom(ctx), in.ID, patch))
}

func (h *UserHandler) patch(ctx context.Context, in *UserPatchInput) (*ItemOutput[UserResponse], error) {
	patch, err := in.Body.patch()
	if err != nil {
		return nil, humaError(err)
	}
	return h.result(h.users.Update(ctx, auth.ActorFrom(ctx), in.ID, patch))
}

func (h *UserHandler) delete(ctx context.Context, in *IDPath) (*struct{}, error) {
	if err := h.users.Delete(ctx, auth.ActorFrom(ctx), in.ID); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}

func (h *UserHandler) listProfiles(ctx context.Context, in *UserListInput) (*ListOutput[UserResponse], error) {
	page, err := h.users.ListProfiles(ctx, auth.ActorFrom(ctx), in.params(h.pager, in.filterParams()))
	if err != nil {
		return nil, humaError(err)
	}
	return listOutput(page, userResponse), nil
}

func (h *UserHandler) getProfile(ctx context.Context, in *IDPath) (*ItemOutput[UserResponse], error) {
	return h.result(h.users.GetProfile(ctx, auth.ActorFrom(ctx), in.ID))
}

func (h *UserHandler) createProfile(ctx context.Context, in *UserCreateInput) (*ItemOutput[UserResponse], error) {
	input, err := in.Body.input()
	if err != nil {
		return nil, humaError(err)
	}
	return h.result(h.users.CreateProfile(ctx, auth.ActorFrom(ctx), input))
}

func (h *UserHandler) replaceProfile(ctx context.Context, in *UserReplaceInput) (*ItemOutput[UserResponse], error) {
	patch, err := in.Body.replacePatch()
	if err != nil {
		return nil, humaError(err)
	}
	return h.result(h.users.UpdateProfile(ctx, auth.ActorFrom(ctx), in.ID, patch))
}

func (h *UserHandler) patchProfile(ctx context.Context, in *UserPatchInput) (*ItemOutput[UserResponse], error) {
	patch, err := in.Body.patch()
	if err != nil {
		return nil, humaError(err)
	}
	return h.result(h.users.UpdateProfile(ctx, auth.ActorFrom(ctx), in.ID, patch))
}

func (h *UserHandler) deleteProfile(ctx context.Context, in *IDPath) (*struct{}, error) {
	if err := h.users.DeleteProfile(ctx, auth.ActorFrom(ctx), in.ID); err != nil {
		return nil, humaError(err)
	}
	return nil, nil
}

func (h *UserHandler) result(u *models.User, err error) (*ItemOutput[UserResponse], error) {
	if err != nil {
		return nil, humaError(err)
	}
	return item(userResponse(*u)), nil
}
