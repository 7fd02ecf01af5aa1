// Package presentation turns insight reports into render requests for an
// external charting backend, a data table and a word-cloud generator.
package presentation

import (
	"fmt"
	"strconv"

	"catalog-dashboard/models"
)

// NoDataMessage is shown in place of a chart with no points.
const NoDataMessage = "No data"

// TableColumns are the record fields shown in the data table.
var TableColumns = []string{"title", "type", "country", "release_year", "listed_in", "cast"}

// Chart identifiers.
const (
	ChartTopGenres        = "top_genres"
	ChartTypeDistribution = "type_distribution"
	ChartYearlyTrend      = "yearly_trend"
	ChartReleaseTrend     = "release_trend"
	ChartGenreCountry     = "genre_country"
	ChartAvgDuration      = "avg_duration"
)

// ChartSpec describes one chart for the rendering backend.
type ChartSpec struct {
	ID        string       `json:"id"`
	ChartType string       `json:"chartType"` // "bar", "pie", "line"
	Title     string       `json:"title"`
	XAxis     string       `json:"xAxis,omitempty"`
	YAxis     string       `json:"yAxis,omitempty"`
	Scope     string       `json:"scope"`
	Points    []ChartPoint `json:"points"`
	Empty     bool         `json:"empty"`
	Message   string       `json:"message,omitempty"`
}

// ChartPoint is a single labelled value. Display is an optional
// pre-formatted label such as a pie percentage.
type ChartPoint struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display,omitempty"`
}

// Counter is a quick-stat tile.
type Counter struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Table is the filtered record dump.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// WordCloud is the request handed to the word-cloud generator.
type WordCloud struct {
	Text       string `json:"text"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	Empty      bool   `json:"empty"`
}

// Dashboard is everything the UI shell needs for one selection.
type Dashboard struct {
	Selection      models.Selection `json:"selection"`
	FilteredTitles int              `json:"filteredTitles"`
	Counters       []Counter        `json:"counters"`
	Charts         []ChartSpec      `json:"charts"`
	Table          Table            `json:"table"`
	WordCloud      WordCloud        `json:"wordCloud"`
}

// Options controls ranking length and word-cloud canvas.
type Options struct {
	TopN                int
	WordCloudWidth      int
	WordCloudHeight     int
	WordCloudBackground string
}

// DefaultOptions matches the dashboard's stock layout.
func DefaultOptions() Options {
	return Options{TopN: 10, WordCloudWidth: 800, WordCloudHeight: 400, WordCloudBackground: "black"}
}

// counterLabels gives the stock tiles their familiar plural captions.
var counterLabels = map[string]string{
	"Movie":   "Movies",
	"TV Show": "TV Shows",
}

// Build maps a report onto render requests.
func Build(r *models.InsightReport, opts Options) *Dashboard {
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}

	d := &Dashboard{
		Selection:      r.Selection,
		FilteredTitles: r.FilteredTitles,
		Counters:       buildCounters(r),
		Table:          BuildTable(r.Rows),
		WordCloud: WordCloud{
			Text:       r.TitleText,
			Width:      opts.WordCloudWidth,
			Height:     opts.WordCloudHeight,
			Background: opts.WordCloudBackground,
			Empty:      r.TitleText == "",
		},
	}

	yearly := yearPoints(r.Yearly)
	d.Charts = []ChartSpec{
		finish(ChartSpec{
			ID: ChartTopGenres, ChartType: "bar", Title: fmt.Sprintf("Top %d Genres", opts.TopN),
			XAxis: "Count", YAxis: "Genre", Scope: r.Scopes["genres"],
			Points: genrePoints(r.Genres, opts.TopN),
		}),
		finish(ChartSpec{
			ID: ChartTypeDistribution, ChartType: "pie", Title: "Content Type Distribution",
			Scope: r.Scopes["types"], Points: typePoints(r.Types),
		}),
		finish(ChartSpec{
			ID: ChartYearlyTrend, ChartType: "line", Title: "Year-wise Release Trend",
			XAxis: "Year", YAxis: "Number of Titles", Scope: r.Scopes["yearly"],
			Points: yearly,
		}),
		finish(ChartSpec{
			ID: ChartReleaseTrend, ChartType: "line", Title: "Release Trend Over the Years",
			XAxis: "Release Year", YAxis: "Number of Titles", Scope: r.Scopes["yearly"],
			Points: append([]ChartPoint(nil), yearly...),
		}),
		finish(ChartSpec{
			ID: ChartGenreCountry, ChartType: "bar", Title: fmt.Sprintf("Top %d Genre and Country Pairs", opts.TopN),
			XAxis: "Count", YAxis: "Country / Genre", Scope: r.Scopes["genre_country"],
			Points: genreCountryPoints(r.GenreCountry, opts.TopN),
		}),
		finish(ChartSpec{
			ID: ChartAvgDuration, ChartType: "bar", Title: "Average Duration by Type",
			XAxis: "Type", YAxis: "Average Duration", Scope: r.Scopes["avg_duration"],
			Points: durationPoints(r.AvgDuration),
		}),
	}
	return d
}

// Chart returns the chart with the given id, or nil.
func (d *Dashboard) Chart(id string) *ChartSpec {
	for i := range d.Charts {
		if d.Charts[i].ID == id {
			return &d.Charts[i]
		}
	}
	return nil
}

func finish(c ChartSpec) ChartSpec {
	if len(c.Points) == 0 {
		c.Points = []ChartPoint{}
		c.Empty = true
		c.Message = NoDataMessage
	}
	return c
}

func buildCounters(r *models.InsightReport) []Counter {
	counters := []Counter{{Label: "Total Titles", Value: r.TotalTitles}}
	for _, tc := range r.TypeCounters {
		label, ok := counterLabels[tc.Type]
		if !ok {
			label = tc.Type
		}
		counters = append(counters, Counter{Label: label, Value: tc.Count})
	}
	return counters
}

func genrePoints(genres []models.GenreCount, n int) []ChartPoint {
	if len(genres) > n {
		genres = genres[:n]
	}
	points := make([]ChartPoint, 0, len(genres))
	for _, g := range genres {
		points = append(points, ChartPoint{Label: g.Genre, Value: float64(g.Count)})
	}
	return points
}

func typePoints(types []models.TypeCount) []ChartPoint {
	points := make([]ChartPoint, 0, len(types))
	for _, t := range types {
		points = append(points, ChartPoint{
			Label:   t.Type,
			Value:   float64(t.Count),
			Display: fmt.Sprintf("%.1f%%", t.Percent),
		})
	}
	return points
}

func yearPoints(years []models.YearCount) []ChartPoint {
	points := make([]ChartPoint, 0, len(years))
	for _, y := range years {
		points = append(points, ChartPoint{Label: strconv.Itoa(y.Year), Value: float64(y.Count)})
	}
	return points
}

func genreCountryPoints(rows []models.GenreCountryCount, n int) []ChartPoint {
	if len(rows) > n {
		rows = rows[:n]
	}
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{Label: r.Country + " / " + r.Genre, Value: float64(r.Count)})
	}
	return points
}

func durationPoints(rows []models.TypeDuration) []ChartPoint {
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{
			Label:   r.Type,
			Value:   r.Average,
			Display: strconv.FormatFloat(r.Average, 'f', 1, 64),
		})
	}
	return points
}

// BuildTable renders records into TableColumns order. Absent values are empty cells.
func BuildTable(titles []models.Title) Table {
	rows := make([][]string, 0, len(titles))
	for _, t := range titles {
		year := ""
		if t.ReleaseYear != nil {
			year = strconv.Itoa(*t.ReleaseYear)
		}
		rows = append(rows, []string{t.Title, t.Type, t.Country, year, t.ListedIn, t.Cast})
	}
	return Table{Columns: append([]string(nil), TableColumns...), Rows: rows}
}
