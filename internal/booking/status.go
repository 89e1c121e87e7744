package booking

import "github.com/gdg-garage/tourism-api/internal/models"

// cancelled has no outgoing edge.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCancelled},
}

// Transition checks that a booking may move from one status to another.
// Keeping the current status is always allowed.
func Transition(from, to models.BookingStatus) error {
	if !to.Valid() {
		return ErrInvalidStatus.Withf("invalid booking status %q", to)
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition.Withf("cannot change booking status from %s to %s", from, to)
}
