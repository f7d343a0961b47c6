package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "frontier/pkg/domain-errors"
)

func TestKeyIsDeterministic(t *testing.T) {
	assert.Equal(t, "safety-101_uid-7", Key("safety-101", "uid-7"))
	a := &PolicyAcknowledgment{PolicyID: "safety-101", UserID: "uid-7"}
	assert.Equal(t, Key("safety-101", "uid-7"), a.Key())
}

func TestValidatePolicyID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"plain", "safety-101", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"separator", "a_b", true},
		{"too long", strings.Repeat("p", maxPolicyIDLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePolicyID(tt.id)
			if tt.wantErr {
				assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAcknowledged(t *testing.T) {
	acks := []*PolicyAcknowledgment{{PolicyID: "p", UserID: "u1"}, {PolicyID: "p", UserID: "u2"}}
	assert.True(t, Acknowledged(acks, "u2"))
	assert.False(t, Acknowledged(acks, "u3"))
	assert.False(t, Acknowledged(nil, "u1"))
}
