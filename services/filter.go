package services

import "catalog-dashboard/models"

// DefaultSelection is the initial dashboard state: every distinct type,
// no year or country constraint.
func DefaultSelection(ds *Dataset) models.Selection {
	return models.Selection{Types: ds.DistinctTypes()}
}

// Apply returns the records matching the selection.
//
// Type is always enforced, so an empty Types list matches nothing. Years and
// Countries only constrain when non-empty. Country is compared against the
// stored string as a whole: "France" does not match "France, India".
func Apply(ds *Dataset, sel models.Selection) *View {
	types := toSet(sel.Types)

	var years map[int]struct{}
	if len(sel.Years) > 0 {
		years = make(map[int]struct{}, len(sel.Years))
		for _, y := range sel.Years {
			years[y] = struct{}{}
		}
	}

	var countries map[string]struct{}
	if len(sel.Countries) > 0 {
		countries = toSet(sel.Countries)
	}

	indices := make([]int, 0, len(ds.titles))
	for i, t := range ds.titles {
		if _, ok := types[t.Type]; !ok {
			continue
		}
		if years != nil {
			if t.ReleaseYear == nil {
				continue
			}
			if _, ok := years[*t.ReleaseYear]; !ok {
				continue
			}
		}
		if countries != nil {
			if !t.HasCountry() {
				continue
			}
			if _, ok := countries[t.Country]; !ok {
				continue
			}
		}
		indices = append(indices, i)
	}

	return &View{base: ds, indices: indices}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
