package lookup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCodeTableQuadClass(t *testing.T) {
	table := NewCodeTable(
		map[string]int{"01": 1, "10": 3, "19": 4},
		nil,
	)

	cases := []struct {
		root string
		want int
	}{
		{"01", 1},
		{"10", 3},
		{"19", 4},
		{"99", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := table.QuadClass(tc.root); got != tc.want {
			t.Fatalf("root %q: want=%d got=%d", tc.root, tc.want, got)
		}
	}
}

func TestCodeTableGoldsteinScale(t *testing.T) {
	table := NewCodeTable(nil, map[string]float64{
		"010": 0.0,
		"190": -10.0,
	})

	if got := table.GoldsteinScale("190"); got == nil || *got != -10.0 {
		t.Fatalf("code 190: want=-10.0 got=%v", got)
	}
	if got := table.GoldsteinScale("010"); got == nil || *got != 0.0 {
		t.Fatalf("code 010: want=0.0 got=%v", got)
	}
	if got := table.GoldsteinScale("999"); got != nil {
		t.Fatalf("unknown code: want=nil got=%v", *got)
	}
}

func TestGoldsteinScaleReturnsIndependentPointers(t *testing.T) {
	table := NewCodeTable(nil, map[string]float64{"010": 1.0})

	a := table.GoldsteinScale("010")
	b := table.GoldsteinScale("010")
	*a = 99.0
	if *b != 1.0 {
		t.Fatalf("pointer aliasing: second lookup changed to %v", *b)
	}
}

func TestLoadCodeTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code_tables.yaml")
	content := `
quad_class:
  "01": 1
  "14": 3
goldstein:
  "010": 0.0
  "145": -7.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write code tables: %v", err)
	}

	table, err := LoadCodeTable(path)
	if err != nil {
		t.Fatalf("LoadCodeTable: %v", err)
	}
	if got := table.QuadClass("14"); got != 3 {
		t.Fatalf("quad class: want=3 got=%d", got)
	}
	if got := table.GoldsteinScale("145"); got == nil || *got != -7.5 {
		t.Fatalf("goldstein: want=-7.5 got=%v", got)
	}
}
