package models

// Selection is the user's current filter choice across the three dimensions.
// Types is a hard filter: an empty list selects nothing. Years and Countries
// are opt-in: empty means unconstrained.
type Selection struct {
	Types     []string `json:"types"`
	Years     []int    `json:"years"`
	Countries []string `json:"countries"`
}

// GenreCount is one row of the genre frequency summary.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// TypeCount is one row of the content type distribution.
type TypeCount struct {
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// YearCount is one row of the yearly release trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// GenreCountryCount counts titles per (country, genre) pair. Country is the
// stored string and may list several countries.
type GenreCountryCount struct {
	Country string `json:"country"`
	Genre   string `json:"genre"`
	Count   int    `json:"count"`
}

// TypeDuration is the mean leading number of the duration text per type.
// Minutes and season counts are averaged together.
type TypeDuration struct {
	Type    string  `json:"type"`
	Average float64 `json:"average"`
	Samples int     `json:"samples"`
}

// TypeCounter is a quick-stat count for a literal type label.
type TypeCounter struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// InsightReport holds every derived output for one filter selection.
// Scopes records which rows ("filtered" or "base") each output was computed from.
type InsightReport struct {
	Selection Selection `json:"selection"`

	TotalTitles    int           `json:"total_titles"`
	TypeCounters   []TypeCounter `json:"type_counters"`
	FilteredTitles int           `json:"filtered_titles"`

	Genres       []GenreCount        `json:"genres"`
	Types        []TypeCount         `json:"types"`
	Yearly       []YearCount         `json:"yearly"`
	GenreCountry []GenreCountryCount `json:"genre_country"`
	AvgDuration  []TypeDuration      `json:"avg_duration"`
	TitleText    string              `json:"title_text"`
	Rows         []Title             `json:"-"`

	Scopes map[string]string `json:"scopes"`
}
