package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in name lists. Creation and offspring lists are independent.
var (
	defaultCreationNames = []string{
		"Goupix", "Magicarpe", "Germignon", "Caninos",
		"Pikachu", "Miaouss", "Rattata", "Fouinette",
		"Rondoudou", "Evoli", "Psykokwak", "Nosferapti",
	}
	defaultOffspringNames = []string{
		"Pikachu", "Bulbizarre", "Salamèche", "Carapuce",
		"Évoli", "Miaouss", "Rondoudou", "Psykokwak",
		"Rattata", "Grolet", "Goupix", "Nosferapti",
	}
)

type nameListFile struct {
	Creation  []string `yaml:"creation"`
	Offspring []string `yaml:"offspring"`
}

// NameTable holds the candidate names drawn from when a creature is
// created with a random name, and when offspring are born.
type NameTable struct {
	creation  []string
	offspring []string
}

// Creation returns the names used for random creation.
func (t *NameTable) Creation() []string {
	return t.creation
}

// Offspring returns the names used for newborns.
func (t *NameTable) Offspring() []string {
	return t.offspring
}

// Count returns the total number of candidate names.
func (t *NameTable) Count() int {
	return len(t.creation) + len(t.offspring)
}

// DefaultNameTable returns the built-in name lists.
func DefaultNameTable() *NameTable {
	return &NameTable{
		creation:  append([]string(nil), defaultCreationNames...),
		offspring: append([]string(nil), defaultOffspringNames...),
	}
}

// LoadNameTable loads name lists from a YAML file. A list that is missing
// or empty in the file falls back to the built-in one.
func LoadNameTable(path string) (*NameTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name_list: %w", err)
	}
	var f nameListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse name_list: %w", err)
	}
	t := DefaultNameTable()
	if names := cleanNames(f.Creation); len(names) > 0 {
		t.creation = names
	}
	if names := cleanNames(f.Offspring); len(names) > 0 {
		t.offspring = names
	}
	return t, nil
}

// cleanNames drops blank entries. Names containing a comma would corrupt
// the save file, so they are dropped too.
func cleanNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n == "" || strings.ContainsRune(n, ',') {
			continue
		}
		out = append(out, n)
	}
	return out
}
