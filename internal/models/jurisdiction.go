package models

import (
	"fmt"
	"strings"
)

// JurisdictionLevel identifies a node's depth in the three-level hierarchy.
type JurisdictionLevel string

const (
	LevelState  JurisdictionLevel = "state"
	LevelCounty JurisdictionLevel = "county"
	LevelCity   JurisdictionLevel = "city"
)

// Valid reports whether the level is one of the three known values.
func (l JurisdictionLevel) Valid() bool {
	return l == LevelState || l == LevelCounty || l == LevelCity
}

// Jurisdiction is one node in the state -> county -> city tree.
// Sourced read-only from the hierarchy warehouse; never created or
// mutated by this service. All nullable columns use pointers to
// distinguish zero values from NULL.
type Jurisdiction struct {
	ID            string            `json:"jurisdiction_id"`
	Level         JurisdictionLevel `json:"level"`
	Name          string            `json:"name"`
	ParentID      *string           `json:"parent_id,omitempty"`
	StateCode     string            `json:"state_code"`
	HasPolicy     bool              `json:"has_policy"`
	HasIncentives bool              `json:"has_incentives"`
	Population    *int              `json:"population,omitempty"`
	ChildCount    int               `json:"child_count,omitempty"`
}

// JurisdictionID builds the warehouse identifier for a jurisdiction.
// The scheme matches the compliance warehouse keys:
//
//	STATE_CA
//	COUNTY_CA_LOS_ANGELES
//	CITY_CA_SANTA_MONICA
//
// Name whitespace runs collapse to single underscores.
func JurisdictionID(level JurisdictionLevel, stateCode, name string) string {
	state := strings.ToUpper(stateCode)
	if level == LevelState {
		return fmt.Sprintf("STATE_%s", state)
	}
	formatted := strings.Join(strings.Fields(strings.ToUpper(name)), "_")
	return fmt.Sprintf("%s_%s_%s", strings.ToUpper(string(level)), state, formatted)
}
