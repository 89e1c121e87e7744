package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
	"gorm.io/gorm"
)

var userQuery = store.QuerySpec{
	Filters: map[string]store.Filter{
		"role":      store.StringFilter("role"),
		"is_active": store.BoolFilter("is_active"),
	},
	Search: []string{"email", "full_name"},
	Ordering: map[string]string{
		"email":      "email",
		"created_at": "created_at",
	},
}

var (
	ErrEmailTaken     = apperr.New(apperr.Validation, "user with this email already exists")
	ErrEmailRequired  = apperr.New(apperr.Validation, "users must have an email address")
	ErrInvalidEmail   = apperr.New(apperr.Validation, "enter a valid email address")
	ErrRoleNotAllowed = apperr.New(apperr.Forbidden, "you may not assign this role")
)

// Registration is the public sign-up payload.
type Registration struct {
	Email          string
	FullName       string
	Password       string
	ProfilePicture *string
	DateOfBirth    *time.Time
}

// UserInput is what an admin may set when creating a user.
type UserInput struct {
	Registration
	Role     models.Role
	IsActive bool
}

type UserPatch struct {
	Email          *string
	FullName       *string
	Password       *string
	ProfilePicture **string
	DateOfBirth    **time.Time
	Role           *models.Role
	IsActive       *bool
}

type UserService struct {
	store *store.Store
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

// Register creates a regular, active account. It is open to anyone.
func (s *UserService) Register(ctx context.Context, in Registration) (*models.User, error) {
	return s.create(ctx, UserInput{Registration: in, Role: models.RoleUser, IsActive: true})
}

// EnsureSuperuser creates a superuser with the given credentials unless an
// account with that email exists already.
func (s *UserService) EnsureSuperuser(ctx context.Context, email, password string) error {
	exists, err := s.store.Users.Exists(ctx, "email = ?", auth.NormalizeEmail(email))
	if err != nil || exists {
		return err
	}
	_, err = s.create(ctx, UserInput{
		Registration: Registration{Email: email, Password: password},
		Role:         models.RoleSuperuser,
		IsActive:     true,
	})
	if err == nil {
		log.Printf("Created superuser %s", email)
	}
	return err
}

// List is the admin-only user collection.
func (s *UserService) List(ctx context.Context, actor policy.Actor, params store.ListParams) (*store.Page[models.User], error) {
	if err := policy.Authorize(policy.AdminOnly, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	return s.store.Users.List(ctx, userQuery, params)
}

func (s *UserService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.User, error) {
	return s.get(ctx, actor, policy.AdminOnly, id)
}

func (s *UserService) Create(ctx context.Context, actor policy.Actor, in UserInput) (*models.User, error) {
	if err := policy.Authorize(policy.AdminOnly, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !policy.CanAssignRole(actor, in.Role) {
		return nil, ErrRoleNotAllowed
	}
	return s.create(ctx, in)
}

func (s *UserService) Update(ctx context.Context, actor policy.Actor, id uint, patch UserPatch) (*models.User, error) {
	return s.update(ctx, actor, policy.AdminOnly, id, patch)
}

func (s *UserService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	return s.delete(ctx, actor, policy.AdminOnly, id)
}

// ListProfiles returns every user to admins and only the actor's own
// record to anyone else.
func (s *UserService) ListProfiles(ctx context.Context, actor policy.Actor, params store.ListParams) (*store.Page[models.User], error) {
	if err := policy.Authorize(policy.OwnerOrAdmin, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	var scopes []store.Scope
	if !actor.IsAdmin() {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("id = ?", actor.ID) })
	}
	return s.store.Users.List(ctx, userQuery, params, scopes...)
}

func (s *UserService) GetProfile(ctx context.Context, actor policy.Actor, id uint) (*models.User, error) {
	return s.get(ctx, actor, policy.OwnerOrAdmin, id)
}

// CreateProfile exists for admins only; the profile surface is not a
// sign-up path.
func (s *UserService) CreateProfile(ctx context.Context, actor policy.Actor, in UserInput) (*models.User, error) {
	return s.Create(ctx, actor, in)
}

func (s *UserService) UpdateProfile(ctx context.Context, actor policy.Actor, id uint, patch UserPatch) (*models.User, error) {
	return s.update(ctx, actor, policy.OwnerOrAdmin, id, patch)
}

func (s *UserService) DeleteProfile(ctx context.Context, actor policy.Actor, id uint) error {
	return s.delete(ctx, actor, policy.OwnerOrAdmin, id)
}

func (s *UserService) get(ctx context.Context, actor policy.Actor, rule policy.Rule, id uint) (*models.User, error) {
	if err := policy.Authorize(rule, actor, policy.Read, nil); err != nil {
		return nil, err
	}
	u, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return nil, conceal(actor, err, s.store.Users.ErrNotFound())
	}
	if err := policy.Authorize(rule, actor, policy.Read, *u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) create(ctx context.Context, in UserInput) (*models.User, error) {
	user := &models.User{
		Email:          auth.NormalizeEmail(in.Email),
		FullName:       strings.TrimSpace(in.FullName),
		ProfilePicture: in.ProfilePicture,
		DateOfBirth:    in.DateOfBirth,
		Role:           in.Role,
		IsActive:       in.IsActive,
	}
	if err := validateEmail(user.Email); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "password must not be empty")
	}
	user.PasswordHash = hash

	err = s.store.Users.Create(ctx, user, func(tx *gorm.DB, u *models.User) error {
		return s.checkEmailFree(ctx, tx, u.Email, 0)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) update(ctx context.Context, actor policy.Actor, rule policy.Rule, id uint, patch UserPatch) (*models.User, error) {
	if err := policy.Authorize(rule, actor, policy.Write, nil); err != nil {
		return nil, err
	}
	if patch.Role != nil && !policy.CanAssignRole(actor, *patch.Role) {
		return nil, ErrRoleNotAllowed
	}
	if patch.IsActive != nil && !actor.IsAdmin() {
		return nil, policy.ErrForbidden
	}

	var hash string
	if patch.Password != nil {
		var err error
		if hash, err = auth.HashPassword(*patch.Password); err != nil {
			return nil, apperr.Wrap(apperr.Validation, err, "password must not be empty")
		}
	}

	u, err := s.store.Users.Mutate(ctx, id, func(tx *gorm.DB, u *models.User) error {
		if err := policy.Authorize(rule, actor, policy.Write, *u); err != nil {
			return err
		}
		// accounts ranked above the actor are read-only to them
		if u.ID != actor.ID && !actor.Role.AtLeast(u.Role) {
			return policy.ErrForbidden
		}
		if patch.Email != nil {
			email := auth.NormalizeEmail(*patch.Email)
			if err := validateEmail(email); err != nil {
				return err
			}
			if err := s.checkEmailFree(ctx, tx, email, u.ID); err != nil {
				return err
			}
			u.Email = email
		}
		setIf(&u.FullName, patch.FullName)
		setIf(&u.ProfilePicture, patch.ProfilePicture)
		setIf(&u.DateOfBirth, patch.DateOfBirth)
		setIf(&u.Role, patch.Role)
		setIf(&u.IsActive, patch.IsActive)
		if hash != "" {
			u.PasswordHash = hash
		}
		return nil
	})
	if err != nil {
		return nil, conceal(actor, err, s.store.Users.ErrNotFound())
	}
	return u, nil
}

// delete removes the user and, by cascade, its bookings, reviews,
// favorites and refresh tokens.
func (s *UserService) delete(ctx context.Context, actor policy.Actor, rule policy.Rule, id uint) error {
	if err := policy.Authorize(rule, actor, policy.Write, nil); err != nil {
		return err
	}
	err := s.store.Users.Delete(ctx, id, func(u *models.User) error {
		if err := policy.Authorize(rule, actor, policy.Write, *u); err != nil {
			return err
		}
		if u.ID != actor.ID && !actor.Role.AtLeast(u.Role) {
			return policy.ErrForbidden
		}
		return nil
	})
	return conceal(actor, err, s.store.Users.ErrNotFound())
}

func (s *UserService) checkEmailFree(ctx context.Context, tx *gorm.DB, email string, selfID uint) error {
	taken, err := s.store.Users.In(tx).Exists(ctx, "email = ? AND id <> ?", email, selfID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	return nil
}
