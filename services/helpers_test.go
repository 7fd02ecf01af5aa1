package services

import (
	"context"

	"catalog-dashboard/models"
)

// buildDataset cleans the given raw rows the way Load would.
func buildDataset(raw ...*models.RawTitle) *Dataset {
	return NewDataset("test", NewCleaner(newTestLogger()).Clean(raw))
}

// fakeSource counts reads and can be switched to fail.
type fakeSource struct {
	rows  []*models.RawTitle
	err   error
	reads int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) ReadRaw(ctx context.Context) ([]*models.RawTitle, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func catalogFixture() *Dataset {
	return buildDataset(
		&models.RawTitle{Title: "Alpha", Type: "Movie", Country: "France", ReleaseYear: "2001", ListedIn: "Dramas, Comedies", Duration: "90 min"},
		&models.RawTitle{Title: "Beta", Type: "TV Show", Country: "France, India", ReleaseYear: "2001", ListedIn: "Dramas", Duration: "2 Seasons"},
		&models.RawTitle{Title: "Gamma", Type: "Movie", Country: "India", ReleaseYear: "2003", ListedIn: "Comedies", Duration: "120 min"},
		&models.RawTitle{Title: "Delta", Type: "Movie", Country: "", ReleaseYear: "", ListedIn: "Thrillers", Duration: ""},
		&models.RawTitle{Title: "", Type: "", Country: "United States", ReleaseYear: "2020", ListedIn: "", Duration: "1 Season"},
	)
}
