package lifecycle

import (
	"errors"
	"fmt"

	"meal-market/models"
)

// Rejection reasons. Handlers match on these with errors.Is and decide
// how to surface them; no other error values escape this package.
var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrUnauthorizedActor = errors.New("unauthorized actor")
	ErrTerminalState     = errors.New("order is in a terminal state")
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
	Role models.UserRole    `json:"role"`
}

// validTransitions is the authoritative state machine definition.
// The forward chain belongs to the provider; cancellation is a side-exit
// from any active state, but the customer may only take it before
// cooking starts. Admin is handled separately as a supervisory override.
var validTransitions = []Transition{
	// Provider moves the order along the forward chain
	{From: models.StatusPending, To: models.StatusAccepted, Role: models.RoleProvider},
	{From: models.StatusAccepted, To: models.StatusCooking, Role: models.RoleProvider},
	{From: models.StatusCooking, To: models.StatusOnTheWay, Role: models.RoleProvider},
	{From: models.StatusOnTheWay, To: models.StatusDelivered, Role: models.RoleProvider},
	// Customer may cancel until cooking starts
	{From: models.StatusPending, To: models.StatusCancelled, Role: models.RoleCustomer},
	{From: models.StatusAccepted, To: models.StatusCancelled, Role: models.RoleCustomer},
}

// legalPairs holds every (from, to) edge of the machine regardless of role:
// the forward chain plus CANCELLED from every active state. Admin overrides
// are confined to these edges — no skipping ahead, no moving backward.
var legalPairs = map[[2]models.OrderStatus]bool{
	{models.StatusPending, models.StatusAccepted}:   true,
	{models.StatusAccepted, models.StatusCooking}:   true,
	{models.StatusCooking, models.StatusOnTheWay}:   true,
	{models.StatusOnTheWay, models.StatusDelivered}: true,
	{models.StatusPending, models.StatusCancelled}:  true,
	{models.StatusAccepted, models.StatusCancelled}: true,
	{models.StatusCooking, models.StatusCancelled}:  true,
	{models.StatusOnTheWay, models.StatusCancelled}: true,
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
	Role models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Role}] = true
	}
	return m
}()

// Result is the outcome of an accepted transition. Order is a snapshot
// with the new status applied; persistence stays with the caller.
// Override marks an admin transition that bypassed normal role gating.
type Result struct {
	Order    models.Order
	From     models.OrderStatus
	Override bool
}

// Step validates a requested status change against the current order state
// and the actor's role. The order must carry its latest persisted status:
// the check must never run against a stale client copy.
func Step(order models.Order, to models.OrderStatus, actor models.UserRole) (Result, error) {
	from := order.Status
	if from.IsTerminal() {
		return Result{}, fmt.Errorf("%w: %s accepts no further transitions", ErrTerminalState, from)
	}
	if !legalPairs[[2]models.OrderStatus{from, to}] {
		return Result{}, fmt.Errorf("%w: %s → %s; valid next states are %s",
			ErrIllegalTransition, from, to, describeNext(from))
	}
	override := false
	if actor == models.RoleAdmin {
		// Supervisory override: role gating is bypassed, but the caller
		// must audit the flagged result distinctly from normal flow.
		override = true
	} else if !transitionMap[transitionKey{from, to, actor}] {
		return Result{}, fmt.Errorf("%w: role %q may not move an order from %s to %s",
			ErrUnauthorizedActor, actor, from, to)
	}

	order.Status = to
	return Result{Order: order, From: from, Override: override}, nil
}

// NextStates returns all states reachable from the given one, any role.
func NextStates(status models.OrderStatus) []models.OrderStatus {
	chain := []models.OrderStatus{
		models.StatusAccepted,
		models.StatusCooking,
		models.StatusOnTheWay,
		models.StatusDelivered,
		models.StatusCancelled,
	}
	var nexts []models.OrderStatus
	for _, to := range chain {
		if legalPairs[[2]models.OrderStatus{status, to}] {
			nexts = append(nexts, to)
		}
	}
	return nexts
}

func describeNext(status models.OrderStatus) string {
	nexts := NextStates(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllTransitions returns the role-gated state machine for documentation
func AllTransitions() []Transition {
	return validTransitions
}
