package statemachine

import (
	"errors"
	"strings"

	"food-donation-api/models"
)

// Transition defines a valid state change and which role can perform it
type Transition struct {
	From  models.DonationStatus
	To    models.DonationStatus
	Actor models.UserRole
}

// validTransitions is the authoritative state machine definition.
// A donation only moves forward: available → claimed → completed.
// There is no cancellation and no unclaim.
var validTransitions = []Transition{
	// NGO claims an available donation
	{From: models.StatusAvailable, To: models.StatusClaimed, Actor: models.RoleNGO},
	// The claiming NGO confirms the pickup happened
	{From: models.StatusClaimed, To: models.StatusCompleted, Actor: models.RoleNGO},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.DonationStatus
	To    models.DonationStatus
	Actor models.UserRole
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
func ValidTransitionsFrom(status models.DonationStatus) []models.DonationStatus {
	var nexts []models.DonationStatus
	seen := map[models.DonationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given role can move a donation from one state to another
func CanTransition(from, to models.DonationStatus, actor models.UserRole) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"donation cannot move from '" + string(from) + "' to '" + string(to) +
			"' as role '" + string(actor) + "'; next states from '" + string(from) +
			"': " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.DonationStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
