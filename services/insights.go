package services

import (
	"time"

	"catalog-dashboard/models"
	"catalog-dashboard/utils"
)

// InsightKind names one derived output of the dashboard.
type InsightKind string

const (
	InsightGenres       InsightKind = "genres"
	InsightTypes        InsightKind = "types"
	InsightYearly       InsightKind = "yearly"
	InsightGenreCountry InsightKind = "genre_country"
	InsightAvgDuration  InsightKind = "avg_duration"
	InsightCounters     InsightKind = "counters"
	InsightWordCloud    InsightKind = "word_cloud"
	InsightTable        InsightKind = "table"
)

// Scope selects which rows an insight is computed from.
type Scope string

const (
	// ScopeFiltered uses the records matching the current selection.
	ScopeFiltered Scope = "filtered"
	// ScopeBase ignores the selection and uses the whole dataset.
	ScopeBase Scope = "base"
)

// DefaultScopes is the dashboard's established behaviour: the quick stats,
// the genre×country ranking and the duration averages ignore the filters.
func DefaultScopes() map[InsightKind]Scope {
	return map[InsightKind]Scope{
		InsightGenres:       ScopeFiltered,
		InsightTypes:        ScopeFiltered,
		InsightYearly:       ScopeFiltered,
		InsightWordCloud:    ScopeFiltered,
		InsightTable:        ScopeFiltered,
		InsightGenreCountry: ScopeBase,
		InsightAvgDuration:  ScopeBase,
		InsightCounters:     ScopeBase,
	}
}

// InsightOptions tunes an InsightService.
type InsightOptions struct {
	CounterTypes []string
	TopN         int
	Scopes       map[InsightKind]Scope
}

// InsightService filters the base dataset and computes every summary table.
type InsightService struct {
	logger       *utils.Logger
	counterTypes []string
	topN         int
	scopes       map[InsightKind]Scope
}

// NewInsightService applies defaults for any zero option.
func NewInsightService(logger *utils.Logger, opts InsightOptions) *InsightService {
	s := &InsightService{
		logger:       logger,
		counterTypes: opts.CounterTypes,
		topN:         opts.TopN,
		scopes:       DefaultScopes(),
	}
	if s.counterTypes == nil {
		s.counterTypes = []string{"Movie", "TV Show"}
	}
	if s.topN <= 0 {
		s.topN = 10
	}
	for k, v := range opts.Scopes {
		s.scopes[k] = v
	}
	return s
}

// TopN is the ranking length used for truncated summaries.
func (s *InsightService) TopN() int { return s.topN }

// Scope returns the configured scope for kind.
func (s *InsightService) Scope(kind InsightKind) Scope {
	if sc, ok := s.scopes[kind]; ok {
		return sc
	}
	return ScopeFiltered
}

func (s *InsightService) rows(kind InsightKind, base *Dataset, filtered *View) Rows {
	if s.Scope(kind) == ScopeBase {
		return base
	}
	return filtered
}

// Generate builds the full report for one selection.
func (s *InsightService) Generate(ds *Dataset, sel models.Selection) *models.InsightReport {
	start := time.Now()
	filtered := Apply(ds, sel)

	counterRows := s.rows(InsightCounters, ds, filtered)
	report := &models.InsightReport{
		Selection:      sel,
		TotalTitles:    counterRows.Len(),
		TypeCounters:   CountTypes(counterRows, s.counterTypes),
		FilteredTitles: filtered.Len(),

		Genres:       GenreFrequency(s.rows(InsightGenres, ds, filtered)),
		Types:        TypeDistribution(s.rows(InsightTypes, ds, filtered)),
		Yearly:       YearlyReleaseTrend(s.rows(InsightYearly, ds, filtered)),
		GenreCountry: GenreCountryTopN(s.rows(InsightGenreCountry, ds, filtered), s.topN),
		AvgDuration:  AverageDurationByType(s.rows(InsightAvgDuration, ds, filtered)),
		TitleText:    TitleText(s.rows(InsightWordCloud, ds, filtered)),

		Scopes: make(map[string]string, len(s.scopes)),
	}

	switch table := s.rows(InsightTable, ds, filtered).(type) {
	case *View:
		report.Rows = table.Titles()
	case *Dataset:
		report.Rows = table.All().Titles()
	}

	for k, v := range s.scopes {
		report.Scopes[string(k)] = string(v)
	}

	insightBuilds.Inc()
	insightBuildDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("[insights] %d of %d titles match selection (types=%d years=%d countries=%d)",
		filtered.Len(), ds.Len(), len(sel.Types), len(sel.Years), len(sel.Countries))
	return report
}
