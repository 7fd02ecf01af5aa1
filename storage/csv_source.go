package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"catalog-dashboard/models"
)

// RequiredColumns must all be present in a catalog file.
var RequiredColumns = []string{
	"title", "type", "country", "release_year", "date_added", "listed_in", "duration", "cast",
}

// MissingColumnsError reports required columns absent from the source header.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// CSVSource reads catalog rows from a CSV file through a gota dataframe.
// Every column is loaded as text; typing happens in the cleaner.
type CSVSource struct {
	path string
}

// NewCSVSource returns a source for the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Name() string { return s.path }

// ReadRaw parses the whole file. It fails if the file cannot be opened,
// is not valid CSV, or lacks any of RequiredColumns.
func (s *CSVSource) ReadRaw(ctx context.Context) ([]*models.RawTitle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", s.path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		// gota refuses a frame without data rows; a valid header alone is an
		// empty catalog.
		if header, ok := headerOnly(f); ok {
			if err := checkColumns(header); err != nil {
				return nil, err
			}
			return []*models.RawTitle{}, nil
		}
		return nil, fmt.Errorf("csv: parse %q: %w", s.path, df.Err)
	}

	return framesToRaw(df)
}

// headerOnly rewinds f and reports its header when the file holds no
// records after it.
func headerOnly(f io.ReadSeeker) ([]string, bool) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, false
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, false
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return header, true
		}
		if err != nil {
			return nil, false
		}
		// blank lines are skipped by the reader; a lone empty field is not data
		if len(rec) > 1 || strings.TrimSpace(rec[0]) != "" {
			return nil, false
		}
	}
}

// checkColumns returns a MissingColumnsError naming each required column
// absent from header.
func checkColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[normaliseHeader(name)] = struct{}{}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// framesToRaw maps dataframe columns onto RawTitle fields by normalised header name.
func framesToRaw(df dataframe.DataFrame) ([]*models.RawTitle, error) {
	columns := make(map[string][]string)
	for _, name := range df.Names() {
		key := normaliseHeader(name)
		if _, dup := columns[key]; dup {
			continue
		}
		columns[key] = df.Col(name).Records()
	}

	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	n := df.Nrow()
	cell := func(col string, i int) string {
		vals, ok := columns[col]
		if !ok || i >= len(vals) {
			return ""
		}
		return vals[i]
	}

	rows := make([]*models.RawTitle, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &models.RawTitle{
			ShowID:      cell("show_id", i),
			Title:       cell("title", i),
			Type:        cell("type", i),
			Director:    cell("director", i),
			Cast:        cell("cast", i),
			Country:     cell("country", i),
			DateAdded:   cell("date_added", i),
			ReleaseYear: cell("release_year", i),
			Rating:      cell("rating", i),
			Duration:    cell("duration", i),
			ListedIn:    cell("listed_in", i),
			Description: cell("description", i),
		})
	}
	return rows, nil
}

// normaliseHeader converts "Release Year" → "release_year".
func normaliseHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}
