package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/waterwise-labs/greywater-api/internal/database"
	"github.com/waterwise-labs/greywater-api/internal/models"
)

// HierarchyRepository defines read access to the jurisdiction tree.
// The tree is sourced from the compliance warehouse and is read-only
// from this service's perspective.
type HierarchyRepository interface {
	// ListStates returns every state node, ordered by name.
	ListStates(ctx context.Context) ([]models.Jurisdiction, error)

	// FindStateByCode finds the state node for a two-letter code.
	// Returns nil, nil when the code is unknown (not an error).
	FindStateByCode(ctx context.Context, stateCode string) (*models.Jurisdiction, error)

	// ListCounties returns the county nodes under a state, ordered by name.
	// Returns an empty slice when the state has no county layer.
	ListCounties(ctx context.Context, stateCode string) ([]models.Jurisdiction, error)

	// ListCities returns the city nodes under a parent. parentType selects
	// whether parentID is a county jurisdiction ID or a state code (cities
	// may hang directly off a state when no county layer is modeled).
	ListCities(ctx context.Context, parentID string, parentType models.JurisdictionLevel) ([]models.Jurisdiction, error)
}

type hierarchyRepository struct {
	db *database.Database
}

// NewHierarchyRepository creates a HierarchyRepository backed by Postgres.
func NewHierarchyRepository(db *database.Database) HierarchyRepository {
	return &hierarchyRepository{db: db}
}

const jurisdictionColumns = `
	id,
	level,
	name,
	parent_id,
	state_code,
	has_policy,
	has_incentives,
	population,
	child_count`

func scanJurisdiction(row pgx.Row) (*models.Jurisdiction, error) {
	var j models.Jurisdiction
	err := row.Scan(
		&j.ID,
		&j.Level,
		&j.Name,
		&j.ParentID,
		&j.StateCode,
		&j.HasPolicy,
		&j.HasIncentives,
		&j.Population,
		&j.ChildCount,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *hierarchyRepository) ListStates(ctx context.Context) ([]models.Jurisdiction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM jurisdictions
		WHERE level = 'state'
		ORDER BY name
	`, jurisdictionColumns)

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()

	return collectJurisdictions(rows)
}

func (r *hierarchyRepository) FindStateByCode(ctx context.Context, stateCode string) (*models.Jurisdiction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM jurisdictions
		WHERE level = 'state' AND state_code = $1
		LIMIT 1
	`, jurisdictionColumns)

	j, err := scanJurisdiction(r.db.Pool.QueryRow(ctx, query, strings.ToUpper(stateCode)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query state %q: %w", stateCode, err)
	}
	return j, nil
}

func (r *hierarchyRepository) ListCounties(ctx context.Context, stateCode string) ([]models.Jurisdiction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM jurisdictions
		WHERE level = 'county' AND state_code = $1
		ORDER BY name
	`, jurisdictionColumns)

	rows, err := r.db.Pool.Query(ctx, query, strings.ToUpper(stateCode))
	if err != nil {
		return nil, fmt.Errorf("failed to query counties for state %q: %w", stateCode, err)
	}
	defer rows.Close()

	return collectJurisdictions(rows)
}

func (r *hierarchyRepository) ListCities(ctx context.Context, parentID string, parentType models.JurisdictionLevel) ([]models.Jurisdiction, error) {
	var query string
	var arg string

	if parentType == models.LevelCounty {
		query = fmt.Sprintf(`
			SELECT %s
			FROM jurisdictions
			WHERE level = 'city' AND parent_id = $1
			ORDER BY name
		`, jurisdictionColumns)
		arg = parentID
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM jurisdictions
			WHERE level = 'city' AND state_code = $1
			ORDER BY name
		`, jurisdictionColumns)
		arg = strings.ToUpper(parentID)
	}

	rows, err := r.db.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities under %s %q: %w", parentType, parentID, err)
	}
	defer rows.Close()

	return collectJurisdictions(rows)
}

func collectJurisdictions(rows pgx.Rows) ([]models.Jurisdiction, error) {
	var results []models.Jurisdiction

	for rows.Next() {
		j, err := scanJurisdiction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan jurisdiction row: %w", err)
		}
		results = append(results, *j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jurisdiction rows: %w", err)
	}

	// Empty slice when nothing found (not an error)
	if results == nil {
		results = []models.Jurisdiction{}
	}

	return results, nil
}
