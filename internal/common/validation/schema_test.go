package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"points": map[string]interface{}{"type": "number"},
			"query":  map[string]interface{}{"type": "string"},
		},
		"required": []interface{}{"points"},
	}
}

func TestValidateVariables(t *testing.T) {
	tests := []struct {
		name       string
		variables  string
		valid      bool
		errorField string
	}{
		{name: "valid number", variables: `{"points": 2.5}`, valid: true},
		{name: "extra fields allowed", variables: `{"points": 1, "other": true}`, valid: true},
		{name: "wrong type", variables: `{"points": "two"}`, errorField: "points"},
		{name: "missing required", variables: `{"query": "x"}`, errorField: "points"},
		{name: "empty variables", variables: ``, errorField: "points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateVariables(pointsSchema(), tt.variables)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.errorField != "" {
				fieldErrors := result.GetErrorsForField(tt.errorField)
				require.NotEmpty(t, fieldErrors, "errors: %v", result.GetErrorMessages())
				assert.Equal(t, tt.errorField, fieldErrors[0].Field)
			}
		})
	}
}

func TestValidateVariables_EmptySchema(t *testing.T) {
	result, err := ValidateVariables(nil, `{"anything": 1}`)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateVariables_MalformedDocument(t *testing.T) {
	_, err := ValidateVariables(pointsSchema(), `{not json`)
	assert.Error(t, err)
}

func TestValidateJSON_NestedFields(t *testing.T) {
	schema := []byte(`{
		"type": "object",
		"properties": {
			"items": {"type": "array", "items": {"type": "object", "properties": {"score": {"type": "number"}}}}
		}
	}`)

	result, err := ValidateJSON(schema, []byte(`{"items": [{"score": 1}, {"score": "bad"}]}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "items.1.score", result.Errors[0].Field)
	assert.Equal(t, "INVALID_TYPE", result.Errors[0].Code)
	assert.Len(t, result.GetErrorsForField("items"), 1)
}

func TestValidateJSON_RequiredNamesMissingProperty(t *testing.T) {
	schema := []byte(`{
		"type": "object",
		"properties": {
			"journal": {"type": "object", "required": ["name"]}
		},
		"required": ["journal"]
	}`)

	result, err := ValidateJSON(schema, []byte(`{}`))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "journal", result.Errors[0].Field)
	assert.Equal(t, "REQUIRED", result.Errors[0].Code)
	assert.Equal(t, []string{"journal: journal is required"}, result.GetErrorMessages())

	result, err = ValidateJSON(schema, []byte(`{"journal": {}}`))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "journal.name", result.Errors[0].Field)
	assert.Len(t, result.GetErrorsForField("journal"), 1)
}

func TestCompileSchema(t *testing.T) {
	assert.NoError(t, CompileSchema(pointsSchema()))
	assert.NoError(t, CompileSchema(nil))
	assert.Error(t, CompileSchema(map[string]interface{}{"type": 42}))
}

func TestGetSchemaFromJSON(t *testing.T) {
	schema, err := GetSchemaFromJSON(`{"type": "object"}`)
	require.NoError(t, err)
	assert.Equal(t, "object", schema["type"])
}
