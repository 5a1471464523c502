// Package schemas embeds the JSON Schema documents that constrain structured
// generation output. The schema text is both appended to prompts and used to
// check parsed payloads.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.json
var schemaFiles embed.FS

// Schema file names.
const (
	RequirementsFile    = "requirements.schema.json"
	TailoredContentFile = "tailored_content.schema.json"
)

// Read returns the source text of an embedded schema file.
func Read(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return string(data), nil
}

// MustRead returns an embedded schema's source text, panicking if absent.
// Schemas are compile-time artifacts, so a missing one is a build defect.
func MustRead(name string) string {
	source, err := Read(name)
	if err != nil {
		panic(err)
	}
	return source
}
