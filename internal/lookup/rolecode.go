package lookup

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RoleEncoding is what an actor code decomposes into: at most one known
// group, two religion codes and three domestic-role-type codes. Every
// field may be empty.
type RoleEncoding struct {
	KnownGroup string
	Religion1  string
	Religion2  string
	Type1      string
	Type2      string
	Type3      string
}

// RoleCodeTable classifies the 3-character segments of a composite actor
// code. Loaded once, read-only afterwards.
type RoleCodeTable struct {
	knownGroups map[string]struct{}
	religions   map[string]struct{}
	roleTypes   map[string]struct{}
}

type roleCodeFile struct {
	KnownGroups []string `yaml:"known_groups"`
	Religions   []string `yaml:"religions"`
	Types       []string `yaml:"types"`
}

func LoadRoleCodeTable(path string) (*RoleCodeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load role code table: %w", err)
	}
	var file roleCodeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse role code table: %w", err)
	}
	return NewRoleCodeTable(file.KnownGroups, file.Religions, file.Types), nil
}

func NewRoleCodeTable(knownGroups, religions, roleTypes []string) *RoleCodeTable {
	return &RoleCodeTable{
		knownGroups: toCodeSet(knownGroups),
		religions:   toCodeSet(religions),
		roleTypes:   toCodeSet(roleTypes),
	}
}

func toCodeSet(codes []string) map[string]struct{} {
	out := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			out[c] = struct{}{}
		}
	}
	return out
}

// ResolveRoleEncoding walks the actor code in 3-character segments and
// classifies each against the group, religion and role-type sets. An empty
// code short-circuits to an all-empty encoding without any lookup.
func (t *RoleCodeTable) ResolveRoleEncoding(actorCode string) RoleEncoding {
	var enc RoleEncoding
	actorCode = strings.ToUpper(strings.TrimSpace(actorCode))
	if actorCode == "" {
		return enc
	}

	religions := make([]string, 0, 2)
	roleTypes := make([]string, 0, 3)
	for i := 0; i+3 <= len(actorCode); i += 3 {
		segment := actorCode[i : i+3]
		switch {
		case t.contains(t.knownGroups, segment):
			if enc.KnownGroup == "" {
				enc.KnownGroup = segment
			}
		case t.contains(t.religions, segment):
			if len(religions) < 2 {
				religions = append(religions, segment)
			}
		case t.contains(t.roleTypes, segment):
			if len(roleTypes) < 3 {
				roleTypes = append(roleTypes, segment)
			}
		}
	}

	if len(religions) > 0 {
		enc.Religion1 = religions[0]
	}
	if len(religions) > 1 {
		enc.Religion2 = religions[1]
	}
	if len(roleTypes) > 0 {
		enc.Type1 = roleTypes[0]
	}
	if len(roleTypes) > 1 {
		enc.Type2 = roleTypes[1]
	}
	if len(roleTypes) > 2 {
		enc.Type3 = roleTypes[2]
	}
	return enc
}

func (t *RoleCodeTable) contains(set map[string]struct{}, code string) bool {
	_, ok := set[code]
	return ok
}
