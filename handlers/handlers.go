package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"meal-market/cart"
	"meal-market/checkout"
	"meal-market/gateway"
	"meal-market/lifecycle"
	"meal-market/middleware"
	"meal-market/orderapi"

	"github.com/gin-gonic/gin"
)

// Handlers carries the core components. Everything is injected so tests
// can swap collaborators; nothing is reached through ambient globals.
type Handlers struct {
	Carts   *cart.Store
	Flow    *checkout.Flow
	Orders  orderapi.OrderService
	Catalog orderapi.Catalog
}

func New(carts *cart.Store, flow *checkout.Flow, orders orderapi.OrderService, catalog orderapi.Catalog) *Handlers {
	return &Handlers{Carts: carts, Flow: flow, Orders: orders, Catalog: catalog}
}

// reason maps a rejection to its stable taxonomy code so clients can
// branch on it without parsing messages.
func reason(err error) string {
	switch {
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		return "IllegalTransition"
	case errors.Is(err, lifecycle.ErrUnauthorizedActor):
		return "UnauthorizedActor"
	case errors.Is(err, lifecycle.ErrTerminalState):
		return "TerminalState"
	case errors.Is(err, cart.ErrProviderConflict):
		return "CrossProviderConflict"
	case errors.Is(err, cart.ErrQuantityOutOfRange):
		return "QuantityOutOfRange"
	case errors.Is(err, checkout.ErrEmptyCart):
		return "EmptyCart"
	case errors.Is(err, orderapi.ErrUnavailable):
		return "UpstreamUnavailable"
	default:
		return "Rejected"
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, orderapi.ErrOrderNotFound),
		errors.Is(err, orderapi.ErrMealNotFound),
		errors.Is(err, orderapi.ErrProviderNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrUnauthorizedActor):
		return http.StatusForbidden
	case errors.Is(err, lifecycle.ErrIllegalTransition),
		errors.Is(err, lifecycle.ErrTerminalState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, cart.ErrProviderConflict),
		errors.Is(err, checkout.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, orderapi.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// requireSession returns the caller's session, answering 401 itself for
// anonymous callers on paths the gateway leaves open to them.
func requireSession(c *gin.Context) (*gateway.Session, bool) {
	session := middleware.SessionFrom(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":  "Authentication required",
			"reason": "Unauthenticated",
		})
		return nil, false
	}
	return session, true
}

// uintParam parses a numeric path parameter, answering the request itself
// on malformed input.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// reject writes a rejection without applying any partial mutation; the
// presentation layer decides how to surface it.
func reject(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error":  err.Error(),
		"reason": reason(err),
	})
}
