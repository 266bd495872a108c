package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wowtools/dbckit/pkg/codec"
)

// fieldDef is one entry of a schema file.
type fieldDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// schemaFile is the on-disk schema document. The fields list is ordered;
// order defines slot position.
type schemaFile struct {
	Fields []fieldDef `yaml:"fields"`
}

// LoadFile loads a schema from a YAML file of the form:
//
//	fields:
//	  - name: id
//	    type: uint32
//	  - name: model_name
//	    type: string
func LoadFile(path string) (*Schema, error) {
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid schema path: %w", err)
		}
		path = absPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var doc schemaFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	fields := make([]Field, 0, len(doc.Fields))
	for _, def := range doc.Fields {
		ft, err := codec.ParseFieldType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", def.Name, err)
		}
		fields = append(fields, Field{Name: def.Name, Type: ft})
	}

	return New(fields)
}

// SaveFile writes the schema to a YAML file readable by LoadFile.
func SaveFile(s *Schema, path string) error {
	doc := schemaFile{Fields: make([]fieldDef, 0, s.Len())}
	for _, f := range s.Fields() {
		doc.Fields = append(doc.Fields, fieldDef{Name: f.Name, Type: f.Type.String()})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
