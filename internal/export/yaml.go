package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/trilex/internal/dictionary"
)

// writeYAML writes the table as a mapping node so key order is kept.
func writeYAML(w io.Writer, table *dictionary.Table[string]) error {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	table.Each(func(key, text string) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text},
		)
	})
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
