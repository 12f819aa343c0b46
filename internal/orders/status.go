package orders

import (
	"fmt"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

// allowedTransitions is the forward-only pipeline plus cancellation from any
// non-terminal status.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusServed, models.OrderStatusCancelled},
	models.OrderStatusServed:    {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

var pipeline = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusPending:   models.OrderStatusPreparing,
	models.OrderStatusPreparing: models.OrderStatusReady,
	models.OrderStatusReady:     models.OrderStatusServed,
	models.OrderStatusServed:    models.OrderStatusCompleted,
}

// NextStatus returns the pipeline successor, or false for terminal statuses.
func NextStatus(current models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := pipeline[current]
	return next, ok
}

func CanTransition(current, next models.OrderStatus) bool {
	for _, s := range allowedTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

func validateStatusTransition(current, next models.OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, next)
	}
	if !CanTransition(current, next) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, current, next)
	}
	return nil
}
