package lookup

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLookupFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()
	writeLookupFile(t, dir, "country_country.txt", `
# aliases
FRANCE:France
FRENCH:France

USA:United States
`)
	writeLookupFile(t, dir, "person_country.txt", `
MACRON:France
BIDEN:United States
malformed line without separator
:France
EMPTYVALUE:
`)

	tables, err := LoadTables(dir)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	cases := []struct {
		actor   string
		country string
		found   bool
	}{
		{"FRANCE", "France", true},
		{"french", "France", true},
		{"  Macron  ", "France", true},
		{"BIDEN", "United States", true},
		{"EMPTYVALUE", "", false},
		{"UNKNOWN", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		country, found := tables.CountryForActor(tc.actor)
		if country != tc.country || found != tc.found {
			t.Fatalf("actor %q: want=(%q,%v) got=(%q,%v)", tc.actor, tc.country, tc.found, country, found)
		}
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeLookupFile(t, dir, "country_country.txt", "FRANCE:France\n")

	if _, err := LoadTables(dir); err == nil {
		t.Fatalf("want error for missing person table, got nil")
	}
}

func TestCountryForActorAliasBeatsPerson(t *testing.T) {
	tables := NewTables(
		map[string]string{"JORDAN": "Jordan"},
		map[string]string{"JORDAN": "United States"},
	)

	country, found := tables.CountryForActor("Jordan")
	if !found || country != "Jordan" {
		t.Fatalf("alias precedence: want=(Jordan,true) got=(%q,%v)", country, found)
	}
}
