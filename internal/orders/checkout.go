package orders

import (
	"errors"
	"strings"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

var ErrInvalidCustomer = errors.New("invalid customer details")

// CheckoutError carries the message shown on the checkout form.
type CheckoutError struct {
	Field   string
	Message string
}

func (e *CheckoutError) Error() string { return e.Message }

func (e *CheckoutError) Unwrap() error { return ErrInvalidCustomer }

// NormalizeCheckout trims the customer fields and drops the table number for
// anything but dine-in. It returns the first missing field as a CheckoutError.
func NormalizeCheckout(in CreateOrderInput) (CreateOrderInput, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.TableNumber = strings.TrimSpace(in.TableNumber)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.CustomerName == "" {
		return in, &CheckoutError{Field: "customer_name", Message: "Please enter your name"}
	}
	if in.CustomerPhone == "" {
		return in, &CheckoutError{Field: "customer_phone", Message: "Please enter your phone number"}
	}
	if in.OrderType == models.OrderTypeDineIn {
		if in.TableNumber == "" {
			return in, &CheckoutError{Field: "table_number", Message: "Please enter table number"}
		}
	} else {
		in.TableNumber = ""
	}
	return in, nil
}
