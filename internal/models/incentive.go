package models

import "strings"

// IncentiveProgram is one rebate/credit/loan offer scoped to a jurisdiction
// level. Amount fields and eligibility flags are frequently absent in the
// warehouse; consumers apply the documented defaults rather than erroring.
// ResidentialEligibility and CommercialEligibility are tri-state: an absent
// flag is not the same as an explicit false (the sector filter treats them
// asymmetrically).
type IncentiveProgram struct {
	ProgramName             string            `json:"program_name"`
	IncentiveType           string            `json:"incentive_type,omitempty"`
	IncentiveAmountMin      *float64          `json:"incentive_amount_min,omitempty"`
	IncentiveAmountMax      *float64          `json:"incentive_amount_max,omitempty"`
	RebatePercentage        *float64          `json:"rebate_percentage,omitempty"`
	ResidentialEligibility  *bool             `json:"residential_eligibility,omitempty"`
	CommercialEligibility   *bool             `json:"commercial_eligibility,omitempty"`
	ProgramDescription      *string           `json:"program_description,omitempty"`
	IncentiveURL            *string           `json:"incentive_url,omitempty"`
	JurisdictionLevel       JurisdictionLevel `json:"jurisdiction_level,omitempty"`
	EligibilityRequirements *string           `json:"eligibility_requirements,omitempty"`
	DocumentationRequired   *string           `json:"documentation_required,omitempty"`
	ProcessingTime          *string           `json:"processing_time,omitempty"`
	ContactEmail            *string           `json:"program_contact_email,omitempty"`
	ContactPhone            *string           `json:"program_contact_phone,omitempty"`
	CoverageArea            *string           `json:"coverage_area,omitempty"`
	DeadlineInfo            *string           `json:"deadline_info,omitempty"`
}

// Sector partitions incentive programs by audience for display filtering.
type Sector string

const (
	SectorResidential Sector = "residential"
	SectorCommercial  Sector = "commercial"
)

// Valid reports whether the sector is a known value.
func (s Sector) Valid() bool {
	return s == SectorResidential || s == SectorCommercial
}

// EligibleFor applies the sector filter to a single program. Residential is
// the assumed default audience: a program is residential-eligible unless the
// flag is explicitly false, but commercial-eligible only when the flag is
// explicitly true.
func (p IncentiveProgram) EligibleFor(sector Sector) bool {
	if sector == SectorCommercial {
		return p.CommercialEligibility != nil && *p.CommercialEligibility
	}
	return p.ResidentialEligibility == nil || *p.ResidentialEligibility
}

// IsGrant reports whether the program is tracked as a grant rather than a
// rebate/credit offer. Grants are excluded from the homeowner-facing rebate
// views but kept in the raw directory aggregate.
func (p IncentiveProgram) IsGrant() bool {
	return strings.Contains(strings.ToLower(p.IncentiveType), "grant")
}
