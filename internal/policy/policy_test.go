package policy

import (
	"testing"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	alice     = Actor{ID: 1, Role: models.RoleUser, Authenticated: true}
	bob       = Actor{ID: 2, Role: models.RoleUser, Authenticated: true}
	admin     = Actor{ID: 3, Role: models.RoleAdmin, Authenticated: true}
	superuser = Actor{ID: 4, Role: models.RoleSuperuser, Authenticated: true}
)

func ownedRecords() []models.Owned {
	return []models.Owned{
		models.Booking{ID: 10, UserID: alice.ID},
		models.Review{ID: 11, UserID: alice.ID},
		models.Favorite{ID: 12, UserID: alice.ID},
		models.User{ID: alice.ID},
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	for _, a := range []Actor{Anonymous, alice, admin, superuser} {
		assert.NoError(t, Authorize(AdminOrReadOnly, a, Read, nil), "read by %+v", a)
	}

	assert.ErrorIs(t, Authorize(AdminOrReadOnly, Anonymous, Write, nil), apperr.ErrUnauthenticated)
	assert.ErrorIs(t, Authorize(AdminOrReadOnly, alice, Write, nil), apperr.ErrForbidden)
	assert.NoError(t, Authorize(AdminOrReadOnly, admin, Write, nil))
	assert.NoError(t, Authorize(AdminOrReadOnly, superuser, Write, nil))
}

func TestOwnerOrAdmin(t *testing.T) {
	for _, rec := range ownedRecords() {
		for _, op := range []Operation{Read, Write} {
			assert.NoError(t, Authorize(OwnerOrAdmin, alice, op, rec), "owner %s %T", op, rec)
			assert.NoError(t, Authorize(OwnerOrAdmin, admin, op, rec), "admin %s %T", op, rec)
			assert.NoError(t, Authorize(OwnerOrAdmin, superuser, op, rec), "superuser %s %T", op, rec)
			assert.ErrorIs(t, Authorize(OwnerOrAdmin, bob, op, rec), apperr.ErrForbidden, "stranger %s %T", op, rec)
			assert.ErrorIs(t, Authorize(OwnerOrAdmin, Anonymous, op, rec), apperr.ErrUnauthenticated, "anonymous %s %T", op, rec)
		}
	}
}

func TestOwnerOrAdmin_Collection(t *testing.T) {
	assert.NoError(t, Authorize(OwnerOrAdmin, bob, Write, nil))
	assert.ErrorIs(t, Authorize(OwnerOrAdmin, Anonymous, Read, nil), apperr.ErrUnauthenticated)
}

func TestAnonymousNeverOwns(t *testing.T) {
	// a zero id must not match a record whose owner id is also zero
	assert.False(t, Anonymous.Owns(models.Booking{}))
	assert.ErrorIs(t, Authorize(OwnerOrAdmin, Anonymous, Read, models.Booking{}), apperr.ErrUnauthenticated)
}

func TestAdminOnly(t *testing.T) {
	assert.ErrorIs(t, Authorize(AdminOnly, Anonymous, Read, nil), apperr.ErrUnauthenticated)
	assert.ErrorIs(t, Authorize(AdminOnly, alice, Read, models.User{ID: alice.ID}), apperr.ErrForbidden)
	assert.NoError(t, Authorize(AdminOnly, admin, Write, models.User{ID: alice.ID}))
}

func TestCanAssignRole(t *testing.T) {
	assert.False(t, CanAssignRole(alice, models.RoleUser))
	assert.True(t, CanAssignRole(admin, models.RoleUser))
	assert.True(t, CanAssignRole(admin, models.RoleAdmin))
	assert.False(t, CanAssignRole(admin, models.RoleSuperuser))
	assert.True(t, CanAssignRole(superuser, models.RoleSuperuser))
	assert.False(t, CanAssignRole(superuser, "root"))
}
