package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"catalog-dashboard/models"
)

// leadingNumberRegexp captures the integer run at the start of a duration
// ("90 min" → 90, "2 Seasons" → 2).
var leadingNumberRegexp = regexp.MustCompile(`^\s*(\d+)`)

// splitGenres splits a listed_in value on commas and trims each tag.
func splitGenres(listedIn string) []string {
	parts := strings.Split(listedIn, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// GenreFrequency counts genre tags across rows, most frequent first.
// Equal counts keep first-encountered order.
func GenreFrequency(rows Rows) []models.GenreCount {
	index := make(map[string]int)
	var out []models.GenreCount

	for i := 0; i < rows.Len(); i++ {
		for _, g := range splitGenres(rows.At(i).ListedIn) {
			pos, ok := index[g]
			if !ok {
				pos = len(out)
				index[g] = pos
				out = append(out, models.GenreCount{Genre: g})
			}
			out[pos].Count++
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TypeDistribution counts rows per type, most frequent first, with each
// type's share of the total in percent.
func TypeDistribution(rows Rows) []models.TypeCount {
	index := make(map[string]int)
	var out []models.TypeCount

	for i := 0; i < rows.Len(); i++ {
		typ := rows.At(i).Type
		pos, ok := index[typ]
		if !ok {
			pos = len(out)
			index[typ] = pos
			out = append(out, models.TypeCount{Type: typ})
		}
		out[pos].Count++
	}

	total := rows.Len()
	for i := range out {
		out[i].Percent = float64(out[i].Count) / float64(total) * 100
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// YearlyReleaseTrend counts rows per release year in ascending year order.
// Rows without a year are skipped and missing years are not zero-filled.
func YearlyReleaseTrend(rows Rows) []models.YearCount {
	counts := make(map[int]int)
	for i := 0; i < rows.Len(); i++ {
		if y := rows.At(i).ReleaseYear; y != nil {
			counts[*y]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	out := make([]models.YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, models.YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// GenreCountryTopN counts (country, genre) pairs and keeps the n largest.
// Genres are exploded per tag; country stays the stored string, so
// "France, India" is its own key. n <= 0 keeps every pair.
func GenreCountryTopN(rows Rows, n int) []models.GenreCountryCount {
	type pair struct{ country, genre string }
	index := make(map[pair]int)
	var out []models.GenreCountryCount

	for i := 0; i < rows.Len(); i++ {
		t := rows.At(i)
		if !t.HasCountry() || t.ListedIn == "" {
			continue
		}
		for _, g := range splitGenres(t.ListedIn) {
			key := pair{t.Country, g}
			pos, ok := index[key]
			if !ok {
				pos = len(out)
				index[key] = pos
				out = append(out, models.GenreCountryCount{Country: t.Country, Genre: g})
			}
			out[pos].Count++
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// DurationValue extracts the leading integer of a duration text.
func DurationValue(duration string) (int, bool) {
	m := leadingNumberRegexp.FindStringSubmatch(duration)
	if len(m) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// AverageDurationByType averages DurationValue per type, ordered by type.
// Minutes and season counts are mixed in the same mean. Types with no
// usable duration are left out.
func AverageDurationByType(rows Rows) []models.TypeDuration {
	sums := make(map[string]int)
	samples := make(map[string]int)

	for i := 0; i < rows.Len(); i++ {
		t := rows.At(i)
		v, ok := DurationValue(t.Duration)
		if !ok {
			continue
		}
		sums[t.Type] += v
		samples[t.Type]++
	}
	if len(samples) == 0 {
		return nil
	}

	out := make([]models.TypeDuration, 0, len(samples))
	for typ, n := range samples {
		out = append(out, models.TypeDuration{
			Type:    typ,
			Average: float64(sums[typ]) / float64(n),
			Samples: n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// CountTypes counts rows whose type equals each label exactly.
func CountTypes(rows Rows, labels []string) []models.TypeCounter {
	out := make([]models.TypeCounter, len(labels))
	for i, l := range labels {
		out[i].Type = l
	}
	for i := 0; i < rows.Len(); i++ {
		typ := rows.At(i).Type
		for j := range out {
			if out[j].Type == typ {
				out[j].Count++
			}
		}
	}
	return out
}

// TitleText joins non-empty titles with single spaces for the word cloud.
func TitleText(rows Rows) string {
	var b strings.Builder
	for i := 0; i < rows.Len(); i++ {
		title := rows.At(i).Title
		if title == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(title)
	}
	return b.String()
}
