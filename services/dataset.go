package services

import (
	"sort"
	"time"

	"catalog-dashboard/models"
)

// Rows is read-only indexed access to catalog records. Both the base
// Dataset and a filtered View satisfy it, so every aggregation states
// which of the two it runs over at the call site.
type Rows interface {
	Len() int
	At(i int) models.Title
}

// Dataset is the immutable, cleaned base dataset.
type Dataset struct {
	titles   []models.Title
	source   string
	loadedAt time.Time
}

// NewDataset wraps cleaned titles. The slice must not be modified afterwards.
func NewDataset(source string, titles []models.Title) *Dataset {
	return &Dataset{titles: titles, source: source, loadedAt: time.Now()}
}

func (d *Dataset) Len() int { return len(d.titles) }

// At returns a copy of the i-th record.
func (d *Dataset) At(i int) models.Title { return d.titles[i] }

func (d *Dataset) Source() string      { return d.source }
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// All returns a view covering every record.
func (d *Dataset) All() *View {
	idx := make([]int, len(d.titles))
	for i := range idx {
		idx[i] = i
	}
	return &View{base: d, indices: idx}
}

// DistinctTypes lists type values in first-seen order. This is the default
// content-type selection.
func (d *Dataset) DistinctTypes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range d.titles {
		if _, ok := seen[t.Type]; ok {
			continue
		}
		seen[t.Type] = struct{}{}
		out = append(out, t.Type)
	}
	return out
}

// ReleaseYears lists distinct present release years, newest first.
func (d *Dataset) ReleaseYears() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, t := range d.titles {
		if t.ReleaseYear == nil {
			continue
		}
		if _, ok := seen[*t.ReleaseYear]; ok {
			continue
		}
		seen[*t.ReleaseYear] = struct{}{}
		out = append(out, *t.ReleaseYear)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Countries lists distinct stored country strings (not split on commas)
// in first-seen order.
func (d *Dataset) Countries() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range d.titles {
		if !t.HasCountry() {
			continue
		}
		if _, ok := seen[t.Country]; ok {
			continue
		}
		seen[t.Country] = struct{}{}
		out = append(out, t.Country)
	}
	return out
}

// View is a read-only subset of a Dataset, held as indices into it.
type View struct {
	base    *Dataset
	indices []int
}

func (v *View) Len() int { return len(v.indices) }

// At returns a copy of the i-th record of the view.
func (v *View) At(i int) models.Title { return v.base.titles[v.indices[i]] }

// IDs returns the identities of the records in the view, in order.
func (v *View) IDs() []int64 {
	ids := make([]int64, len(v.indices))
	for i, idx := range v.indices {
		ids[i] = v.base.titles[idx].ID
	}
	return ids
}

// Titles copies the view's records out.
func (v *View) Titles() []models.Title {
	out := make([]models.Title, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.base.titles[idx]
	}
	return out
}
