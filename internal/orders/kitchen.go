package orders

import (
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

// ElapsedMinutes is the whole minutes since the order was placed.
func ElapsedMinutes(o models.Order, now time.Time) int {
	d := now.Sub(o.CreatedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// Overdue reports whether the kitchen has run past the estimate.
func Overdue(o models.Order, now time.Time) bool {
	return o.EstimatedTime > 0 && ElapsedMinutes(o, now) > o.EstimatedTime
}
