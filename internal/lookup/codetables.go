package lookup

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CodeTable maps event root codes to their quad class (one of four coarse
// categories) and full event codes to their Goldstein scale score.
type CodeTable struct {
	quadClass map[string]int
	goldstein map[string]float64
}

type codeTableFile struct {
	QuadClass map[string]int     `yaml:"quad_class"`
	Goldstein map[string]float64 `yaml:"goldstein"`
}

func LoadCodeTable(path string) (*CodeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load code table: %w", err)
	}
	var file codeTableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse code table: %w", err)
	}
	return NewCodeTable(file.QuadClass, file.Goldstein), nil
}

func NewCodeTable(quadClass map[string]int, goldstein map[string]float64) *CodeTable {
	t := &CodeTable{
		quadClass: make(map[string]int, len(quadClass)),
		goldstein: make(map[string]float64, len(goldstein)),
	}
	for k, v := range quadClass {
		t.quadClass[normalizeCode(k)] = v
	}
	for k, v := range goldstein {
		t.goldstein[normalizeCode(k)] = v
	}
	return t
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// QuadClass returns the coarse event class for a root code, 0 when the
// root code is unknown.
func (t *CodeTable) QuadClass(rootCode string) int {
	return t.quadClass[normalizeCode(rootCode)]
}

// GoldsteinScale returns the cooperation-conflict score for an event code,
// nil when the code has no entry.
func (t *CodeTable) GoldsteinScale(eventCode string) *float64 {
	v, ok := t.goldstein[normalizeCode(eventCode)]
	if !ok {
		return nil
	}
	return &v
}
