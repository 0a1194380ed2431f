package statemachine

import (
	"errors"

	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "client", "business", "driver", "admin"
}

// validTransitions is the authoritative state machine definition.
// The mobile client never validates transitions itself; it trusts whatever
// status this service hands back, so this table is the only gate.
var validTransitions = []Transition{
	// Business confirms and works the order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "business"},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: "business"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "business"},
	// Driver claims a ready order, then carries it through delivery
	{From: models.StatusReady, To: models.StatusAssigned, Actor: "driver"},
	{From: models.StatusAssigned, To: models.StatusPickingUp, Actor: "driver"},
	{From: models.StatusPickingUp, To: models.StatusInTransit, Actor: "driver"},
	{From: models.StatusInTransit, To: models.StatusDelivered, Actor: "driver"},
	// Client may back out before the kitchen starts
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "client"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "client"},
	// Business may cancel anything still on its side of the handoff
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "business"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "business"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "business"},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: "business"},
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "business"},
	// Admin can cancel from any non-terminal state
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusPickingUp, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusInTransit, To: models.StatusCancelled, Actor: "admin"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
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

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
