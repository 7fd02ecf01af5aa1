package models

import "time"

// RawTitle holds one unprocessed catalog row exactly as read from the source.
// Empty strings mean the cell was missing.
type RawTitle struct {
	ShowID      string
	Title       string
	Type        string
	Director    string
	Cast        string
	Country     string
	DateAdded   string
	ReleaseYear string
	Rating      string
	Duration    string
	ListedIn    string
	Description string
}

// Title is a cleaned catalog record. ID is its position in the base dataset
// and serves as the record identity for filtered views.
//
// Optional text fields use "" for absent; optional numbers and dates are nil.
type Title struct {
	ID          int64      `json:"id"`
	ShowID      string     `json:"show_id,omitempty"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Director    string     `json:"director,omitempty"`
	Cast        string     `json:"cast,omitempty"`
	Country     string     `json:"country,omitempty"`
	DateAdded   *time.Time `json:"date_added,omitempty"`
	YearAdded   *int       `json:"year_added,omitempty"`
	MonthAdded  *int       `json:"month_added,omitempty"`
	ReleaseYear *int       `json:"release_year,omitempty"`
	Rating      string     `json:"rating,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	ListedIn    string     `json:"listed_in"`
	Description string     `json:"description,omitempty"`
}

// HasCountry reports whether the record carries a country value.
func (t Title) HasCountry() bool { return t.Country != "" }
