package api

import (
	"errors"

	"github.com/JawwadIrshad/Resturant-App/internal/cart"
	"github.com/JawwadIrshad/Resturant-App/internal/chatbot"
	"github.com/JawwadIrshad/Resturant-App/internal/menu"
	"github.com/JawwadIrshad/Resturant-App/internal/orders"
	"github.com/JawwadIrshad/Resturant-App/internal/stock"

	"github.com/gofiber/fiber/v2"
)

// httpError maps domain errors onto status codes. The error text is safe to
// show to the caller.
func httpError(err error) error {
	var ce *orders.CheckoutError
	switch {
	case errors.As(err, &ce):
		return fiber.NewError(fiber.StatusBadRequest, ce.Message)

	case errors.Is(err, menu.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, orders.ErrNotFound),
		errors.Is(err, stock.ErrNotFound),
		errors.Is(err, stock.ErrAlertNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())

	case errors.Is(err, cart.ErrUnavailable),
		errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, orders.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, orders.ErrInvalidStatus),
		errors.Is(err, orders.ErrEmptyOrder),
		errors.Is(err, orders.ErrInvalidOrder),
		errors.Is(err, stock.ErrInvalidItem),
		errors.Is(err, stock.ErrInvalidAmount),
		errors.Is(err, menu.ErrInvalidAmount),
		errors.Is(err, chatbot.ErrEmptyMessage):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())

	case errors.Is(err, chatbot.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, "Too many messages, slow down")
	}
	return err
}

// cartError turns a failed cart result into an HTTP error carrying the
// customer-facing message.
func cartError(res cart.Result) error {
	code := fiber.StatusBadRequest
	switch {
	case errors.Is(res.Err, cart.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(res.Err, cart.ErrUnavailable), errors.Is(res.Err, cart.ErrInsufficientStock):
		code = fiber.StatusConflict
	}
	return fiber.NewError(code, res.Message)
}
