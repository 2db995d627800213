package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/waterwise-labs/greywater-api/internal/logger"
	"github.com/waterwise-labs/greywater-api/internal/models"
	"github.com/waterwise-labs/greywater-api/internal/repository"
	"github.com/waterwise-labs/greywater-api/internal/slug"
)

// Service-level errors
var (
	// ErrJurisdictionNotFound marks a lookup miss: the supplied state code,
	// county name, or city name matched no known jurisdiction. Distinct from
	// transport failures, which are returned wrapped but unmarked.
	ErrJurisdictionNotFound = errors.New("jurisdiction not found")
)

// LevelResult is one level of a resolution: the jurisdiction node, its own
// compliance record if it has one, and the incentive programs attached to
// it. Record is nil when the jurisdiction has no policy of its own; the
// state level's record is always non-nil (synthesized empty when the
// warehouse has no row, since state is the terminal fallback).
type LevelResult struct {
	Jurisdiction *models.Jurisdiction
	Record       *models.ComplianceRecord
	Programs     []models.IncentiveProgram
}

// ResolvedPolicy is the output of one resolution: the three per-level
// results (county and city nil unless requested) and the effective policy
// after most-specific-wins override.
type ResolvedPolicy struct {
	State     *LevelResult
	County    *LevelResult
	City      *LevelResult
	Effective models.EffectivePolicy
}

// PolicyService resolves which regulations govern a location.
type PolicyService interface {
	// Resolve determines the effective greywater policy for a location.
	// stateCode is required; countyName and cityName are optional and, when
	// given, must match a child jurisdiction (case-insensitive,
	// slug-normalized). Returns ErrJurisdictionNotFound when any supplied
	// name matches nothing; a supplied name is never silently dropped in
	// favor of the parent. Any backend failure fails the whole resolution.
	Resolve(ctx context.Context, stateCode, countyName, cityName string) (*ResolvedPolicy, error)
}

type policyService struct {
	hierarchy  repository.HierarchyRepository
	compliance repository.ComplianceRepository
	log        *logger.Logger
}

// NewPolicyService creates a new instance of PolicyService.
func NewPolicyService(hierarchy repository.HierarchyRepository, compliance repository.ComplianceRepository, log *logger.Logger) PolicyService {
	return &policyService{
		hierarchy:  hierarchy,
		compliance: compliance,
		log:        log,
	}
}

func (s *policyService) Resolve(ctx context.Context, stateCode, countyName, cityName string) (*ResolvedPolicy, error) {
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))

	s.log.Info("Resolving jurisdiction policy", map[string]interface{}{
		"state":  stateCode,
		"county": countyName,
		"city":   cityName,
	})

	state, county, city, err := s.resolveJurisdictions(ctx, stateCode, countyName, cityName)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedPolicy{
		State: &LevelResult{Jurisdiction: state},
	}
	if county != nil {
		resolved.County = &LevelResult{Jurisdiction: county}
	}
	if city != nil {
		resolved.City = &LevelResult{Jurisdiction: city}
	}

	// The per-level fetches are independent; run them concurrently and
	// compute the override only once every fetch has completed. A failed
	// fetch cancels the rest and fails the resolution outright; there is
	// no partial effective policy.
	g, gctx := errgroup.WithContext(ctx)
	for _, level := range []*LevelResult{resolved.State, resolved.County, resolved.City} {
		if level == nil {
			continue
		}
		level := level
		g.Go(func() error {
			return s.fetchLevel(gctx, level)
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to fetch compliance levels", err, map[string]interface{}{
			"state":  stateCode,
			"county": countyName,
			"city":   cityName,
		})
		return nil, fmt.Errorf("failed to fetch compliance data: %w", err)
	}

	// State is the terminal fallback and must never be absent
	if resolved.State.Record == nil {
		resolved.State.Record = models.EmptyStateRecord(stateCode)
		resolved.State.Record.AttachIncentives(resolved.State.Programs)
	}

	resolved.Effective = models.ComputeEffective(
		resolved.State.Record,
		levelCompliance(resolved.County),
		levelCompliance(resolved.City),
	)

	s.log.Info("Jurisdiction policy resolved", map[string]interface{}{
		"state":            stateCode,
		"county":           countyName,
		"city":             cityName,
		"compliance_level": resolved.Effective.ComplianceLevel,
	})

	return resolved, nil
}

// resolveJurisdictions walks the hierarchy from the state down, matching
// supplied names against each parent's children.
func (s *policyService) resolveJurisdictions(ctx context.Context, stateCode, countyName, cityName string) (state, county, city *models.Jurisdiction, err error) {
	state, err = s.hierarchy.FindStateByCode(ctx, stateCode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to look up state %q: %w", stateCode, err)
	}
	if state == nil {
		return nil, nil, nil, fmt.Errorf("%w: state %q", ErrJurisdictionNotFound, stateCode)
	}

	if countyName != "" {
		counties, err := s.hierarchy.ListCounties(ctx, stateCode)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to list counties for %q: %w", stateCode, err)
		}
		county, err = matchChild(counties, countyName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: county %q in %s", err, countyName, stateCode)
		}
	}

	if cityName != "" {
		var cities []models.Jurisdiction
		if county != nil {
			cities, err = s.hierarchy.ListCities(ctx, county.ID, models.LevelCounty)
		} else {
			// No county layer supplied; cities hang directly off the state
			cities, err = s.hierarchy.ListCities(ctx, stateCode, models.LevelState)
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to list cities for %q: %w", cityName, err)
		}
		city, err = matchChild(cities, cityName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: city %q in %s", err, cityName, stateCode)
		}
	}

	return state, county, city, nil
}

// matchChild matches a supplied name against candidate jurisdictions using
// the same slug normalization the URL layer uses, so "los-angeles",
// "Los Angeles", and "LOS ANGELES" all resolve to the same node.
func matchChild(candidates []models.Jurisdiction, name string) (*models.Jurisdiction, error) {
	found, ok := slug.FindBySlug(candidates, slug.NameToSlug(name), func(j models.Jurisdiction) string {
		return j.Name
	})
	if !ok {
		return nil, ErrJurisdictionNotFound
	}
	return &found, nil
}

// fetchLevel loads one level's compliance record and incentive programs.
// A missing record is normal (no override at this level); both lookups
// hitting the warehouse is the transport boundary where real errors appear.
func (s *policyService) fetchLevel(ctx context.Context, level *LevelResult) error {
	record, err := s.compliance.FindRecord(ctx, level.Jurisdiction.ID)
	if err != nil {
		return err
	}

	programs, err := s.compliance.ListPrograms(ctx, level.Jurisdiction.ID)
	if err != nil {
		return err
	}

	level.Programs = programs
	if record != nil {
		record.AttachIncentives(programs)
	}
	level.Record = record
	return nil
}

func levelCompliance(level *LevelResult) *models.LevelCompliance {
	if level == nil {
		return nil
	}
	return &models.LevelCompliance{
		Jurisdiction: level.Jurisdiction,
		Record:       level.Record,
	}
}
