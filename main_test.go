package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Alpha,,"A, B",France,"September 25, 2021",2001,,90 min,Dramas,
s2,TV Show,Beta,,,"France, India",,2001,,2 Seasons,"Dramas, Comedies",
s3,Movie,Gamma,,,India," August 4, 2017",2003,,120 min,Comedies,
`

func runTable(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	chdirForTest(t, dir)

	src := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(src, []byte(catalogCSV), 0o644))
	t.Setenv("DATASET_PATH", src)
	t.Setenv("LOG_LEVEL", "error")

	out := filepath.Join(dir, "out.csv")
	argv := append([]string{"catalog-dashboard", "table", "--out", out}, args...)
	require.NoError(t, newApp().RunContext(context.Background(), argv))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	return string(data)
}

func TestTableCommandDefaultSelection(t *testing.T) {
	got := runTable(t)

	assert.Equal(t, "title,type,country,release_year,listed_in,cast\n"+
		"Alpha,Movie,France,2001,Dramas,\"A, B\"\n"+
		"Beta,TV Show,\"France, India\",2001,\"Dramas, Comedies\",\n"+
		"Gamma,Movie,India,2003,Comedies,\n", got)
}

func TestTableCommandCountryWithComma(t *testing.T) {
	got := runTable(t, "--country", "France, India")

	assert.Equal(t, "title,type,country,release_year,listed_in,cast\n"+
		"Beta,TV Show,\"France, India\",2001,\"Dramas, Comedies\",\n", got)
}

func TestTableCommandTypeAndYear(t *testing.T) {
	got := runTable(t, "--type", "Movie", "--year", "2003")

	assert.Equal(t, "title,type,country,release_year,listed_in,cast\n"+
		"Gamma,Movie,India,2003,Comedies,\n", got)
}

func TestTableCommandExplicitEmptyType(t *testing.T) {
	got := runTable(t, "--type", "")

	assert.Equal(t, "title,type,country,release_year,listed_in,cast\n", got)
}
