package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestEmbeddedSchemasAreValidJSON(t *testing.T) {
	for _, name := range []string{RequirementsFile, TailoredContentFile} {
		t.Run(name, func(t *testing.T) {
			source, err := Read(name)
			require.NoError(t, err)

			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(source), &doc))
			assert.Equal(t, "object", doc["type"])
			assert.NotEmpty(t, doc["title"])
		})
	}
}

func TestRequirementsSchemaAcceptsExtractorOutput(t *testing.T) {
	document := `{
		"required_skills": ["Go", "PostgreSQL"],
		"preferred_skills": [],
		"years_experience": 3,
		"education_requirements": "Not specified",
		"key_responsibilities": ["Build services"],
		"job_level": "Mid",
		"keywords": ["Go", "backend"]
	}`

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(MustRead(RequirementsFile)),
		gojsonschema.NewStringLoader(document),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid(), "extractor-shaped document should validate")
}

func TestRequirementsSchemaRejectsWrongTypes(t *testing.T) {
	document := `{"years_experience": "three to five"}`

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(MustRead(RequirementsFile)),
		gojsonschema.NewStringLoader(document),
	)
	require.NoError(t, err)
	assert.False(t, result.Valid(), "string years_experience should be rejected")
}

func TestTailoredContentSchemaAcceptsMatcherOutput(t *testing.T) {
	document := `{
		"highlighted_experiences": [
			{"company": "Acme", "position": "Engineer", "bullet_points": ["Shipped a thing"]}
		],
		"skills_to_emphasize": ["Go"],
		"professional_summary": "Engineer.",
		"match_score": 0.72,
		"relevance_reasoning": "Strong overlap."
	}`

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(MustRead(TailoredContentFile)),
		gojsonschema.NewStringLoader(document),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestReadMissingSchema(t *testing.T) {
	_, err := Read("no-such.schema.json")
	assert.Error(t, err)
}
