package models

import (
	"strings"
	"time"

	dErrors "frontier/pkg/domain-errors"
)

const maxPolicyIDLength = 128

// keySeparator joins policy and user ids. Policy ids may not contain it, so
// distinct pairs never share a key.
const keySeparator = "_"

// PolicyAcknowledgment records that a user read a policy. At most one exists
// per (PolicyID, UserID); a repeat acknowledgment overwrites it.
type PolicyAcknowledgment struct {
	PolicyID       string    `json:"policyId"`
	UserID         string    `json:"userId"`
	Email          string    `json:"email"`
	AcknowledgedAt time.Time `json:"acknowledgedAt"`
}

// Key is the deterministic record key for the pair.
func Key(policyID, userID string) string {
	return policyID + keySeparator + userID
}

// Key returns the record key of a.
func (a *PolicyAcknowledgment) Key() string {
	return Key(a.PolicyID, a.UserID)
}

// Acknowledger identifies who is acknowledging.
type Acknowledger struct {
	UserID string
	Email  string
}

// ValidatePolicyID checks a policy id before it is used in a key.
func ValidatePolicyID(policyID string) error {
	switch {
	case strings.TrimSpace(policyID) == "":
		return dErrors.New(dErrors.CodeValidation, "policy id is required")
	case len(policyID) > maxPolicyIDLength:
		return dErrors.New(dErrors.CodeValidation, "policy id is too long")
	case strings.Contains(policyID, keySeparator):
		return dErrors.New(dErrors.CodeValidation, "policy id must not contain '_'")
	}
	return nil
}

// Acknowledged reports whether userID appears in acks.
func Acknowledged(acks []*PolicyAcknowledgment, userID string) bool {
	for _, a := range acks {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
