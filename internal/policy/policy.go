// Package policy decides whether an actor may read or write a record.
package policy

import (
	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/models"
)

type Operation int

const (
	Read Operation = iota
	Write
)

func (op Operation) String() string {
	if op == Write {
		return "write"
	}
	return "read"
}

var (
	ErrUnauthenticated = apperr.New(apperr.Unauthenticated, "authentication credentials were not provided")
	ErrForbidden       = apperr.New(apperr.Forbidden, "you do not have permission to perform this action")
)

// Actor is the identity behind a request. The zero value is anonymous.
type Actor struct {
	ID            uint
	Role          models.Role
	Authenticated bool
}

var Anonymous = Actor{}

func ActorFor(u models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role, Authenticated: true}
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated && a.Role.AtLeast(models.RoleAdmin)
}

// Owns compares identities, never record references.
func (a Actor) Owns(record models.Owned) bool {
	return a.Authenticated && record != nil && record.OwnerID() == a.ID
}

// Rule decides a single access question. A nil record asks about the
// collection as a whole (listing or creating).
type Rule interface {
	Allow(a Actor, op Operation, record models.Owned) bool
}

type RuleFunc func(a Actor, op Operation, record models.Owned) bool

func (f RuleFunc) Allow(a Actor, op Operation, record models.Owned) bool {
	return f(a, op, record)
}

// AdminOrReadOnly lets anyone read and only admins write.
var AdminOrReadOnly Rule = RuleFunc(func(a Actor, op Operation, _ models.Owned) bool {
	return op == Read || a.IsAdmin()
})

// OwnerOrAdmin requires an authenticated actor that owns the record or is
// an admin.
var OwnerOrAdmin Rule = RuleFunc(func(a Actor, _ Operation, record models.Owned) bool {
	if !a.Authenticated {
		return false
	}
	if record == nil {
		return true
	}
	return a.IsAdmin() || a.Owns(record)
})

var AdminOnly Rule = RuleFunc(func(a Actor, _ Operation, _ models.Owned) bool {
	return a.IsAdmin()
})

// Authorize turns a rule decision into an error: ErrUnauthenticated for an
// anonymous actor, ErrForbidden for an identified one.
func Authorize(rule Rule, a Actor, op Operation, record models.Owned) error {
	if rule.Allow(a, op, record) {
		return nil
	}
	if !a.Authenticated {
		return ErrUnauthenticated
	}
	return ErrForbidden
}

// CanAssignRole reports whether a may grant role to a user. Admins grant
// roles up to their own rank.
func CanAssignRole(a Actor, role models.Role) bool {
	return role.Valid() && a.IsAdmin() && a.Role.AtLeast(role)
}
