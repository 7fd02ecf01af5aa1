package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"catalog-dashboard/models"
	"catalog-dashboard/utils"
)

// UnknownLabel fills a missing type or genre list.
const UnknownLabel = "Unknown"

// missingTokens are the cell values treated as absent, matching the usual
// spreadsheet/pandas NA markers.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Cleaner transforms RawTitles into typed, defaulted Titles.
// Bad cells never fail a row; they become absent values.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw rows in order. The output has one Title per input row
// and Title.ID is the row position.
func (c *Cleaner) Clean(raw []*models.RawTitle) []models.Title {
	result := make([]models.Title, 0, len(raw))
	var badDates, badYears int

	for i, r := range raw {
		if r == nil {
			r = &models.RawTitle{}
		}

		t := models.Title{
			ID:          int64(i),
			ShowID:      optionalText(r.ShowID),
			Title:       optionalText(r.Title),
			Type:        withDefault(r.Type, UnknownLabel),
			Director:    optionalText(r.Director),
			Cast:        optionalText(r.Cast),
			Country:     optionalText(r.Country),
			Rating:      optionalText(r.Rating),
			Duration:    optionalText(r.Duration),
			ListedIn:    withDefault(r.ListedIn, UnknownLabel),
			Description: optionalText(r.Description),
		}

		if added, ok := parseDateAdded(r.DateAdded); ok {
			year, month := added.Year(), int(added.Month())
			t.DateAdded = &added
			t.YearAdded = &year
			t.MonthAdded = &month
		} else if !isMissing(r.DateAdded) {
			badDates++
		}

		if year, ok := parseReleaseYear(r.ReleaseYear); ok {
			t.ReleaseYear = &year
		} else if !isMissing(r.ReleaseYear) {
			badYears++
		}

		result = append(result, t)
	}

	if badDates > 0 || badYears > 0 {
		c.logger.Debug("[cleaner] Unparseable cells set to absent: %d date_added, %d release_year",
			badDates, badYears)
	}
	c.logger.Info("[cleaner] Cleaned %d titles", len(result))
	return result
}

// parseDateAdded trims the cell and parses it in any common layout
// ("September 25, 2021", "2021-09-25", "25/09/2021" ...), in UTC.
func parseDateAdded(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	// fragments such as "September 25," parse without a year
	if err != nil || t.Year() == 0 {
		return time.Time{}, false
	}
	return t, true
}

// parseReleaseYear coerces a cell to an integer year. Integral decimals
// such as "2019.0" are accepted; anything else is absent.
func parseReleaseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// optionalText returns s unchanged, or "" when the cell is missing.
func optionalText(s string) string {
	if isMissing(s) {
		return ""
	}
	return s
}

func withDefault(s, fallback string) string {
	if isMissing(s) {
		return fallback
	}
	return s
}
