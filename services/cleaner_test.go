package services

import (
	"testing"
	"time"

	"catalog-dashboard/models"
	"catalog-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func TestCleanerParseReleaseYear(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"2020", 2020, true},
		{" 1999 ", 1999, true},
		{"2019.0", 2019, true},
		{"2019.5", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"unknown", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseReleaseYear(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseReleaseYear(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCleanerParseDateAdded(t *testing.T) {
	tests := []struct {
		raw    string
		want   time.Time
		wantOK bool
	}{
		{"September 25, 2021", time.Date(2021, 9, 25, 0, 0, 0, 0, time.UTC), true},
		{" August 4, 2017", time.Date(2017, 8, 4, 0, 0, 0, 0, time.UTC), true},
		{"2019-11-01", time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"   ", time.Time{}, false},
		{"nan", time.Time{}, false},
		{"32/13/2021", time.Time{}, false},
		{"September 25,", time.Time{}, false},
		{"11:", time.Time{}, false},
		{"0000", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := parseDateAdded(tt.raw)
		if ok != tt.wantOK || !got.Equal(tt.want) {
			t.Errorf("parseDateAdded(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCleanerDefaults(t *testing.T) {
	c := NewCleaner(newTestLogger())
	cleaned := c.Clean([]*models.RawTitle{
		{Title: "", Type: "", ListedIn: "", Country: "NA", ReleaseYear: "abc"},
	})

	if len(cleaned) != 1 {
		t.Fatalf("expected 1 title, got %d", len(cleaned))
	}
	got := cleaned[0]
	if got.Type != "Unknown" {
		t.Errorf("Type: got %q, want Unknown", got.Type)
	}
	if got.ListedIn != "Unknown" {
		t.Errorf("ListedIn: got %q, want Unknown", got.ListedIn)
	}
	if got.Title != "" {
		t.Errorf("Title: got %q, want empty", got.Title)
	}
	if got.Country != "" {
		t.Errorf("Country: got %q, want absent", got.Country)
	}
	if got.ReleaseYear != nil {
		t.Errorf("ReleaseYear: got %d, want absent", *got.ReleaseYear)
	}
}

func TestCleanerEmptyDateAdded(t *testing.T) {
	c := NewCleaner(newTestLogger())
	cleaned := c.Clean([]*models.RawTitle{{Title: "X", Type: "Movie", ListedIn: "Drama", DateAdded: ""}})

	got := cleaned[0]
	if got.DateAdded != nil || got.YearAdded != nil || got.MonthAdded != nil {
		t.Errorf("expected absent date fields, got %v %v %v", got.DateAdded, got.YearAdded, got.MonthAdded)
	}
}

func TestCleanerDerivesCalendarFields(t *testing.T) {
	c := NewCleaner(newTestLogger())
	cleaned := c.Clean([]*models.RawTitle{{Type: "Movie", ListedIn: "Drama", DateAdded: "September 25, 2021"}})

	got := cleaned[0]
	if got.YearAdded == nil || *got.YearAdded != 2021 {
		t.Errorf("YearAdded: got %v, want 2021", got.YearAdded)
	}
	if got.MonthAdded == nil || *got.MonthAdded != 9 {
		t.Errorf("MonthAdded: got %v, want 9", got.MonthAdded)
	}
}

func TestCleanerAssignsRowIdentity(t *testing.T) {
	c := NewCleaner(newTestLogger())
	cleaned := c.Clean([]*models.RawTitle{{Title: "A"}, nil, {Title: "C"}})

	if len(cleaned) != 3 {
		t.Fatalf("expected 3 titles, got %d", len(cleaned))
	}
	for i, title := range cleaned {
		if title.ID != int64(i) {
			t.Errorf("ID at %d: got %d", i, title.ID)
		}
		if title.Type == "" || title.ListedIn == "" {
			t.Errorf("row %d: type and listed_in must never be empty", i)
		}
	}
}
