package models

// ComplianceRecord is the regulation snapshot for one jurisdiction at one
// level. A jurisdiction with no policy of its own has no record and inherits
// from its parent during resolution. The free-text source/requirement fields
// are semantically comma-delimited lists; they are passed through verbatim.
type ComplianceRecord struct {
	JurisdictionID        string             `json:"jurisdiction_id"`
	Level                 JurisdictionLevel  `json:"compliance_level"`
	StateCode             string             `json:"state_code"`
	CountyName            *string            `json:"county_name,omitempty"`
	CityName              *string            `json:"city_name,omitempty"`
	GreywaterAllowed      bool               `json:"greywater_allowed"`
	PermitRequired        bool               `json:"permit_required"`
	PermitType            *string            `json:"permit_type,omitempty"`
	PermitFee             *float64           `json:"permit_fee,omitempty"`
	RegulationSummary     *string            `json:"regulation_summary,omitempty"`
	AllowedSources        *string            `json:"allowed_sources,omitempty"`
	ProhibitedSources     *string            `json:"prohibited_sources,omitempty"`
	TreatmentRequirements *string            `json:"treatment_requirements,omitempty"`
	SystemSizeLimits      *string            `json:"system_size_limits,omitempty"`
	SetbackRequirements   *string            `json:"setback_requirements,omitempty"`
	InspectionRequired    bool               `json:"inspection_required"`
	DocumentationURL      *string            `json:"documentation_url,omitempty"`
	Incentives            []IncentiveProgram `json:"incentives"`
	IncentiveCount        int                `json:"incentive_count"`
	MaxIncentive          *float64           `json:"max_incentive,omitempty"`
}

// EmptyStateRecord synthesizes a blank state-level record for a state the
// compliance warehouse has no row for. The state is the terminal fallback of
// the override chain and must never be absent, so a missing row yields an
// empty record rather than an error.
func EmptyStateRecord(stateCode string) *ComplianceRecord {
	return &ComplianceRecord{
		JurisdictionID: JurisdictionID(LevelState, stateCode, ""),
		Level:          LevelState,
		StateCode:      stateCode,
		Incentives:     []IncentiveProgram{},
	}
}

// AttachIncentives sets the record's incentive list and recomputes the
// derived incentive_count and max_incentive fields from it.
func (r *ComplianceRecord) AttachIncentives(programs []IncentiveProgram) {
	if programs == nil {
		programs = []IncentiveProgram{}
	}
	r.Incentives = programs
	r.IncentiveCount = len(programs)
	r.MaxIncentive = nil
	for _, p := range programs {
		if p.IncentiveAmountMax == nil {
			continue
		}
		if r.MaxIncentive == nil || *p.IncentiveAmountMax > *r.MaxIncentive {
			v := *p.IncentiveAmountMax
			r.MaxIncentive = &v
		}
	}
}

// LevelCompliance pairs a jurisdiction node with its own compliance record,
// if it has one. Record is nil when the warehouse holds no row for the node.
type LevelCompliance struct {
	Jurisdiction *Jurisdiction
	Record       *ComplianceRecord
}

// EffectivePolicy is the single record that actually governs a location,
// tagged with the level it was taken from. Computed per request, never stored.
type EffectivePolicy struct {
	ComplianceLevel JurisdictionLevel `json:"compliance_level"`
	ComplianceRecord
}

// ComputeEffective applies the most-specific-wins override to the three
// per-level records. The state record is the default; a county record
// replaces it outright when the county jurisdiction has its own policy, and
// a city record replaces whatever is current under the same condition. The
// override is whole-record, not field-by-field: once a narrower level has a
// policy its record governs entirely.
//
// state must be non-nil; county and city entries may be nil or have nil
// records, which simply leaves the broader level in force.
func ComputeEffective(state *ComplianceRecord, county, city *LevelCompliance) EffectivePolicy {
	effective := EffectivePolicy{
		ComplianceLevel:  LevelState,
		ComplianceRecord: *state,
	}

	if county != nil && county.Record != nil && county.Jurisdiction != nil && county.Jurisdiction.HasPolicy {
		effective = EffectivePolicy{
			ComplianceLevel:  LevelCounty,
			ComplianceRecord: *county.Record,
		}
	}

	if city != nil && city.Record != nil && city.Jurisdiction != nil && city.Jurisdiction.HasPolicy {
		effective = EffectivePolicy{
			ComplianceLevel:  LevelCity,
			ComplianceRecord: *city.Record,
		}
	}

	return effective
}
