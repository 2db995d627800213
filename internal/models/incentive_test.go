package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestEligibleFor_Residential(t *testing.T) {
	tests := []struct {
		name     string
		program  IncentiveProgram
		eligible bool
	}{
		{
			name:     "explicit true is included",
			program:  IncentiveProgram{ResidentialEligibility: boolPtr(true)},
			eligible: true,
		},
		{
			name:     "absent flag is included",
			program:  IncentiveProgram{},
			eligible: true,
		},
		{
			name:     "explicit false is excluded",
			program:  IncentiveProgram{ResidentialEligibility: boolPtr(false)},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.program.EligibleFor(SectorResidential))
		})
	}
}

func TestEligibleFor_Commercial(t *testing.T) {
	tests := []struct {
		name     string
		program  IncentiveProgram
		eligible bool
	}{
		{
			name:     "explicit true is included",
			program:  IncentiveProgram{CommercialEligibility: boolPtr(true)},
			eligible: true,
		},
		{
			name:     "absent flag is excluded",
			program:  IncentiveProgram{},
			eligible: false,
		},
		{
			name:     "explicit false is excluded",
			program:  IncentiveProgram{CommercialEligibility: boolPtr(false)},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.program.EligibleFor(SectorCommercial))
		})
	}
}

func TestIsGrant(t *testing.T) {
	tests := []struct {
		incentiveType string
		isGrant       bool
	}{
		{"grant", true},
		{"Grant", true},
		{"matching grant", true},
		{"rebate", false},
		{"tax_credit", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.incentiveType, func(t *testing.T) {
			p := IncentiveProgram{IncentiveType: tt.incentiveType}
			assert.Equal(t, tt.isGrant, p.IsGrant())
		})
	}
}

func TestSectorValid(t *testing.T) {
	assert.True(t, SectorResidential.Valid())
	assert.True(t, SectorCommercial.Valid())
	assert.False(t, Sector("industrial").Valid())
	assert.False(t, Sector("").Valid())
}
