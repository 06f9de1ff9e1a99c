package config

import (
	"github.com/BurntSushi/toml"
)

func decodeTOML(data []byte) (*document, error) {
	var root map[string]any
	md, err := toml.Decode(string(data), &root)
	if err != nil {
		return nil, err
	}
	return &document{root: root, varOrder: tomlVariableOrder(md)}, nil
}

// tomlVariableOrder recovers the written order of each test's variables from
// the metadata key list. Every [[tests]] header starts a new test; keys below
// tests.variables belong to the most recent one. Inline arrays of tests do
// not produce one header per test, which buildScope detects by count.
func tomlVariableOrder(md toml.MetaData) [][]string {
	var order [][]string
	headers := 0
	for _, key := range md.Keys() {
		switch {
		case len(key) == 1 && key[0] == "tests":
			headers++
			order = append(order, nil)
		case len(key) == 3 && key[0] == "tests" && key[1] == "variables" && headers > 0:
			order[headers-1] = append(order[headers-1], key[2])
		}
	}
	return order
}
