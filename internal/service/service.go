// Package service holds the per-resource operations. Every operation
// authorizes the actor before touching storage and reports failures as
// apperr kinds.
package service

import (
	"errors"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/policy"
	"github.com/gdg-garage/tourism-api/internal/store"
)

// conceal reports a missing owned record as a denial to non-admins, so they
// cannot probe which ids exist.
func conceal(actor policy.Actor, err error, missing *apperr.Error) error {
	if errors.Is(err, missing) && !actor.IsAdmin() {
		return policy.ErrForbidden
	}
	return err
}

// ownerScope limits listings to the actor's own rows unless it is an admin.
func ownerScope(actor policy.Actor) []store.Scope {
	if actor.IsAdmin() {
		return nil
	}
	return []store.Scope{store.OwnedBy(actor.ID)}
}

func requireText(field, value string) error {
	if value == "" {
		return apperr.Newf(apperr.Validation, "%s is required", field)
	}
	return nil
}
