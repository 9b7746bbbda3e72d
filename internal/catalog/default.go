package catalog

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDocument []byte

var defaultCatalog = mustParse(defaultDocument)

// Default returns the built-in Blackline Structures catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Parse decodes a YAML catalog document and validates it.
func Parse(doc []byte) (*Catalog, error) {
	var t Tables
	if err := yaml.Unmarshal(doc, &t); err != nil {
		return nil, errors.Wrap(err, "decode catalog document")
	}
	c, err := New(t)
	if err != nil {
		return nil, errors.Wrap(err, "validate catalog document")
	}
	return c, nil
}

func mustParse(doc []byte) *Catalog {
	c, err := Parse(doc)
	if err != nil {
		panic(err)
	}
	return c
}
