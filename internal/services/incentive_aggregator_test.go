package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waterwise-labs/greywater-api/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func resolvedWithPrograms(state, county, city []models.IncentiveProgram) *ResolvedPolicy {
	resolved := &ResolvedPolicy{
		State: &LevelResult{
			Jurisdiction: &models.Jurisdiction{ID: "STATE_CA", Level: models.LevelState, StateCode: "CA"},
			Programs:     state,
		},
	}
	if county != nil {
		resolved.County = &LevelResult{
			Jurisdiction: &models.Jurisdiction{ID: "COUNTY_CA_LOS_ANGELES", Level: models.LevelCounty, StateCode: "CA"},
			Programs:     county,
		}
	}
	if city != nil {
		resolved.City = &LevelResult{
			Jurisdiction: &models.Jurisdiction{ID: "CITY_CA_SANTA_MONICA", Level: models.LevelCity, StateCode: "CA"},
			Programs:     city,
		}
	}
	return resolved
}

func TestAggregateIncentives_LevelOrder(t *testing.T) {
	resolved := resolvedWithPrograms(
		[]models.IncentiveProgram{{ProgramName: "State Rebate"}},
		[]models.IncentiveProgram{{ProgramName: "County Rebate"}},
		[]models.IncentiveProgram{{ProgramName: "City Rebate"}},
	)

	out := AggregateIncentives(resolved, models.SectorResidential)

	require.Len(t, out.Programs, 3)
	assert.Equal(t, "State Rebate", out.Programs[0].ProgramName)
	assert.Equal(t, "County Rebate", out.Programs[1].ProgramName)
	assert.Equal(t, "City Rebate", out.Programs[2].ProgramName)
	assert.Equal(t, 3, out.Count)
}

func TestAggregateIncentives_SectorFilterAsymmetry(t *testing.T) {
	programs := []models.IncentiveProgram{
		{ProgramName: "Unflagged"},
		{ProgramName: "Residential Only", ResidentialEligibility: boolPtr(true), CommercialEligibility: boolPtr(false)},
		{ProgramName: "Commercial Only", ResidentialEligibility: boolPtr(false), CommercialEligibility: boolPtr(true)},
	}
	resolved := resolvedWithPrograms(programs, nil, nil)

	// Residential defaults to included when the flag is absent
	residential := AggregateIncentives(resolved, models.SectorResidential)
	require.Len(t, residential.Programs, 2)
	assert.Equal(t, "Unflagged", residential.Programs[0].ProgramName)
	assert.Equal(t, "Residential Only", residential.Programs[1].ProgramName)

	// Commercial defaults to excluded: only the explicit true survives
	commercial := AggregateIncentives(resolved, models.SectorCommercial)
	require.Len(t, commercial.Programs, 1)
	assert.Equal(t, "Commercial Only", commercial.Programs[0].ProgramName)
}

func TestAggregateIncentives_Totals(t *testing.T) {
	resolved := resolvedWithPrograms(
		[]models.IncentiveProgram{
			{ProgramName: "A", IncentiveAmountMax: floatPtr(500)},
			{ProgramName: "B", IncentiveAmountMax: floatPtr(2000)},
			{ProgramName: "C"}, // no stated maximum contributes zero
		},
		nil, nil,
	)

	out := AggregateIncentives(resolved, models.SectorResidential)

	assert.Equal(t, 3, out.Count)
	assert.Equal(t, 2000.0, out.MaxSingle)
	assert.Equal(t, 2500.0, out.TotalPotential)
}

func TestAggregateIncentives_EmptyLevels(t *testing.T) {
	resolved := resolvedWithPrograms(nil, nil, nil)

	out := AggregateIncentives(resolved, models.SectorResidential)

	assert.NotNil(t, out.Programs)
	assert.Empty(t, out.Programs)
	assert.Zero(t, out.Count)
	assert.Zero(t, out.MaxSingle)
	assert.Zero(t, out.TotalPotential)
}

func TestAggregateIncentives_NoCrossLevelDedup(t *testing.T) {
	// The same program listed at two levels appears twice; the aggregate
	// is a concatenation, not a merge.
	shared := models.IncentiveProgram{ProgramName: "Water Savings Rebate", IncentiveAmountMax: floatPtr(300)}
	resolved := resolvedWithPrograms(
		[]models.IncentiveProgram{shared},
		[]models.IncentiveProgram{shared},
		nil,
	)

	out := AggregateIncentives(resolved, models.SectorResidential)

	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 600.0, out.TotalPotential)
	assert.Equal(t, 300.0, out.MaxSingle)
}

func TestAggregateRebates_ExcludesGrants(t *testing.T) {
	resolved := resolvedWithPrograms(
		[]models.IncentiveProgram{
			{ProgramName: "Turf Rebate", IncentiveType: "rebate", IncentiveAmountMax: floatPtr(1000)},
			{ProgramName: "Watershed Grant", IncentiveType: "grant", IncentiveAmountMax: floatPtr(50000)},
			{ProgramName: "Matching Fund", IncentiveType: "matching grant", IncentiveAmountMax: floatPtr(10000)},
			{ProgramName: "Install Credit", IncentiveType: "tax_credit", IncentiveAmountMax: floatPtr(250)},
		},
		nil, nil,
	)

	all := AggregateIncentives(resolved, models.SectorResidential)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, 50000.0, all.MaxSingle)

	rebates := AggregateRebates(resolved, models.SectorResidential)
	require.Len(t, rebates.Programs, 2)
	assert.Equal(t, "Turf Rebate", rebates.Programs[0].ProgramName)
	assert.Equal(t, "Install Credit", rebates.Programs[1].ProgramName)
	assert.Equal(t, 1000.0, rebates.MaxSingle)
	assert.Equal(t, 1250.0, rebates.TotalPotential)
}

func TestAggregateIncentives_CommercialScenario(t *testing.T) {
	// Three programs, only one explicitly commercial-eligible
	resolved := resolvedWithPrograms(
		[]models.IncentiveProgram{
			{ProgramName: "Homeowner Rebate", ResidentialEligibility: boolPtr(true)},
			{ProgramName: "Business Retrofit", CommercialEligibility: boolPtr(true), IncentiveAmountMax: floatPtr(5000)},
			{ProgramName: "Unflagged Credit"},
		},
		nil, nil,
	)

	out := AggregateIncentives(resolved, models.SectorCommercial)

	require.Len(t, out.Programs, 1)
	assert.Equal(t, "Business Retrofit", out.Programs[0].ProgramName)
	assert.Equal(t, 5000.0, out.MaxSingle)
}
