package config

import (
	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return &document{}, nil
	}
	var root map[string]any
	if err := node.Decode(&root); err != nil {
		return nil, err
	}
	return &document{root: root, varOrder: yamlVariableOrder(&node)}, nil
}

func yamlVariableOrder(doc *yaml.Node) [][]string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	tests := mappingValue(root, "tests")
	if tests == nil || tests.Kind != yaml.SequenceNode {
		return nil
	}
	order := make([][]string, len(tests.Content))
	for i, test := range tests.Content {
		vars := mappingValue(test, "variables")
		if vars == nil || vars.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(vars.Content); j += 2 {
			order[i] = append(order[i], vars.Content[j].Value)
		}
	}
	return order
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
