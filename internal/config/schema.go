package config

import (
	"bytes"
	"io"
	"os"

	"handlestats/domain/survey"
	"handlestats/internal/errors"

	"gopkg.in/yaml.v3"
)

// LoadSchema reads a YAML schema override. An empty path yields the default schema.
// Fields omitted from the file keep their default column names.
func LoadSchema(path string) (survey.Schema, error) {
	if path == "" {
		return survey.DefaultSchema(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return survey.Schema{}, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to read schema file")
	}
	return ParseSchema(data)
}

// ParseSchema decodes YAML on top of the default schema and validates the result.
func ParseSchema(data []byte) (survey.Schema, error) {
	schema := survey.DefaultSchema()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil && err != io.EOF {
		return survey.Schema{}, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "invalid schema YAML")
	}

	if err := validate.Struct(schema); err != nil {
		return survey.Schema{}, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "schema validation failed")
	}
	return schema, nil
}
