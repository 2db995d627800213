package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/waterwise-labs/greywater-api/internal/database"
	"github.com/waterwise-labs/greywater-api/internal/models"
)

// ComplianceRepository defines read access to per-jurisdiction regulation
// records and incentive programs.
type ComplianceRepository interface {
	// FindRecord fetches the compliance record keyed by jurisdiction ID.
	// Returns nil, nil when the jurisdiction has no record of its own
	// (normal for has_policy=false nodes, not an error).
	FindRecord(ctx context.Context, jurisdictionID string) (*models.ComplianceRecord, error)

	// ListPrograms returns the active incentive programs attached to a
	// jurisdiction, richest first. Returns an empty slice when none exist.
	ListPrograms(ctx context.Context, jurisdictionID string) ([]models.IncentiveProgram, error)
}

type complianceRepository struct {
	db *database.Database
}

// NewComplianceRepository creates a ComplianceRepository backed by Postgres.
func NewComplianceRepository(db *database.Database) ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) FindRecord(ctx context.Context, jurisdictionID string) (*models.ComplianceRecord, error) {
	query := `
		SELECT
			jurisdiction_id,
			level,
			state_code,
			county_name,
			city_name,
			greywater_allowed,
			permit_required,
			permit_type,
			permit_fee,
			regulation_summary,
			allowed_sources,
			prohibited_sources,
			treatment_requirements,
			system_size_limits,
			setback_requirements,
			inspection_required,
			documentation_url
		FROM compliance_records
		WHERE jurisdiction_id = $1
		LIMIT 1
	`

	var rec models.ComplianceRecord
	err := r.db.Pool.QueryRow(ctx, query, jurisdictionID).Scan(
		&rec.JurisdictionID,
		&rec.Level,
		&rec.StateCode,
		&rec.CountyName,
		&rec.CityName,
		&rec.GreywaterAllowed,
		&rec.PermitRequired,
		&rec.PermitType,
		&rec.PermitFee,
		&rec.RegulationSummary,
		&rec.AllowedSources,
		&rec.ProhibitedSources,
		&rec.TreatmentRequirements,
		&rec.SystemSizeLimits,
		&rec.SetbackRequirements,
		&rec.InspectionRequired,
		&rec.DocumentationURL,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query compliance record %q: %w", jurisdictionID, err)
	}

	rec.Incentives = []models.IncentiveProgram{}
	return &rec, nil
}

func (r *complianceRepository) ListPrograms(ctx context.Context, jurisdictionID string) ([]models.IncentiveProgram, error) {
	// jurisdiction_level is derived from the ID prefix the same way the
	// warehouse keys are built: STATE_*, COUNTY_*, CITY_*.
	query := `
		SELECT
			program_name,
			incentive_type,
			incentive_amount_min,
			incentive_amount_max,
			rebate_percentage,
			residential_eligibility,
			commercial_eligibility,
			program_description,
			incentive_url,
			eligibility_requirements,
			documentation_required,
			processing_time,
			contact_email,
			contact_phone,
			coverage_area,
			deadline_info,
			CASE
				WHEN jurisdiction_id LIKE 'CITY\_%' THEN 'city'
				WHEN jurisdiction_id LIKE 'COUNTY\_%' THEN 'county'
				WHEN jurisdiction_id LIKE 'STATE\_%' THEN 'state'
				ELSE 'other'
			END AS jurisdiction_level
		FROM incentive_programs
		WHERE jurisdiction_id = $1
		  AND LOWER(program_status) = 'active'
		ORDER BY incentive_amount_max DESC NULLS LAST, program_name
	`

	rows, err := r.db.Pool.Query(ctx, query, jurisdictionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs for %q: %w", jurisdictionID, err)
	}
	defer rows.Close()

	var results []models.IncentiveProgram

	for rows.Next() {
		var p models.IncentiveProgram
		var level string

		err := rows.Scan(
			&p.ProgramName,
			&p.IncentiveType,
			&p.IncentiveAmountMin,
			&p.IncentiveAmountMax,
			&p.RebatePercentage,
			&p.ResidentialEligibility,
			&p.CommercialEligibility,
			&p.ProgramDescription,
			&p.IncentiveURL,
			&p.EligibilityRequirements,
			&p.DocumentationRequired,
			&p.ProcessingTime,
			&p.ContactEmail,
			&p.ContactPhone,
			&p.CoverageArea,
			&p.DeadlineInfo,
			&level,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}

		p.JurisdictionLevel = models.JurisdictionLevel(level)
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}

	if results == nil {
		results = []models.IncentiveProgram{}
	}

	return results, nil
}
