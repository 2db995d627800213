package services

import (
	"github.com/waterwise-labs/greywater-api/internal/models"
)

// IncentiveAggregate is the merged incentive view for one resolved location:
// the programs that survive the sector filter, in state-county-city order,
// plus the summary figures computed from them.
type IncentiveAggregate struct {
	Programs []models.IncentiveProgram `json:"programs"`
	Count    int                       `json:"count"`
	// MaxSingle is the largest single program maximum; programs without a
	// stated maximum contribute zero.
	MaxSingle float64 `json:"max_single"`
	// TotalPotential sums every program maximum, which can overstate what a
	// household can actually stack. It is a ceiling, not a promise.
	TotalPotential float64 `json:"total_potential"`
}

// AggregateIncentives merges the per-level program lists into one view for
// the given sector. Ordering is broadest first: state, then county, then
// city. Programs offered at multiple levels appear once per level; the
// lists are concatenated, never deduplicated, so stacked totals count each
// listing.
func AggregateIncentives(resolved *ResolvedPolicy, sector models.Sector) IncentiveAggregate {
	return aggregate(resolved, sector, func(models.IncentiveProgram) bool { return true })
}

// AggregateRebates is the purchase-adjacent variant of AggregateIncentives:
// it additionally drops grant programs, which fund projects rather than
// discount equipment, so the totals reflect money a buyer could see at
// checkout.
func AggregateRebates(resolved *ResolvedPolicy, sector models.Sector) IncentiveAggregate {
	return aggregate(resolved, sector, func(p models.IncentiveProgram) bool {
		return !p.IsGrant()
	})
}

func aggregate(resolved *ResolvedPolicy, sector models.Sector, keep func(models.IncentiveProgram) bool) IncentiveAggregate {
	out := IncentiveAggregate{Programs: []models.IncentiveProgram{}}

	for _, level := range []*LevelResult{resolved.State, resolved.County, resolved.City} {
		if level == nil {
			continue
		}
		for _, p := range level.Programs {
			if !p.EligibleFor(sector) || !keep(p) {
				continue
			}
			out.Programs = append(out.Programs, p)
			if p.IncentiveAmountMax != nil {
				out.TotalPotential += *p.IncentiveAmountMax
				if *p.IncentiveAmountMax > out.MaxSingle {
					out.MaxSingle = *p.IncentiveAmountMax
				}
			}
		}
	}

	out.Count = len(out.Programs)
	return out
}
