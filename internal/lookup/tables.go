package lookup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Tables holds the two actor-name lookup maps. They are loaded once at
// pipeline start and must be treated as read-only afterwards; workers share
// them by reference without locking.
type Tables struct {
	countryByAlias  map[string]string
	countryByPerson map[string]string
}

const (
	countryFileName = "country_country.txt"
	personFileName  = "person_country.txt"
)

// LoadTables reads the country-alias and person lookup files from dir.
func LoadTables(dir string) (*Tables, error) {
	countryByAlias, err := readKeyValueFile(filepath.Join(dir, countryFileName))
	if err != nil {
		return nil, fmt.Errorf("load country table: %w", err)
	}
	countryByPerson, err := readKeyValueFile(filepath.Join(dir, personFileName))
	if err != nil {
		return nil, fmt.Errorf("load person table: %w", err)
	}
	return &Tables{
		countryByAlias:  countryByAlias,
		countryByPerson: countryByPerson,
	}, nil
}

// NewTables builds an in-memory table set; keys are matched
// case-insensitively.
func NewTables(countryByAlias, countryByPerson map[string]string) *Tables {
	t := &Tables{
		countryByAlias:  make(map[string]string, len(countryByAlias)),
		countryByPerson: make(map[string]string, len(countryByPerson)),
	}
	for k, v := range countryByAlias {
		t.countryByAlias[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	for k, v := range countryByPerson {
		t.countryByPerson[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return t
}

// CountryForActor resolves an actor surface name to a country name. The
// country-alias table takes precedence over the person table.
func (t *Tables) CountryForActor(name string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}
	if country, ok := t.countryByAlias[key]; ok {
		return country, true
	}
	if country, ok := t.countryByPerson[key]; ok {
		return country, true
	}
	return "", false
}

// readKeyValueFile parses "key:value" lines; blank lines and lines starting
// with '#' are skipped. Keys are upper-cased for case-insensitive matching.
func readKeyValueFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
