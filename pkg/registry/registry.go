// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"publication-rewards/internal/common/config"
	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return &reg, nil
}

// Save writes the registry as indented JSON, creating parent directories.
func Save(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks that every activity is complete, unique and carries a
// compilable input schema.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, activity := range r.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", activity.ID)
		}
		if taskTypes[activity.TaskType] {
			return fmt.Errorf("duplicate task type: %s", activity.TaskType)
		}
		taskTypes[activity.TaskType] = true

		if activity.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", activity.ID)
		}
		if activity.Timeout != "" {
			if _, err := time.ParseDuration(activity.Timeout); err != nil {
				return fmt.Errorf("activity %s has invalid timeout %q: %w", activity.ID, activity.Timeout, err)
			}
		}
		if len(activity.InputSchema) > 0 {
			if err := validation.CompileSchema(activity.InputSchema); err != nil {
				return fmt.Errorf("activity %s has invalid input schema: %w", activity.ID, err)
			}
		}
	}
	return nil
}

// TimeoutOr parses the activity timeout, returning fallback when unset or invalid.
func (a *Activity) TimeoutOr(fallback time.Duration) time.Duration {
	if a == nil || a.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// WorkerConfig returns the worker settings for the activity's task type.
// Task types without a workers entry take their timeout from the activity.
func (a *Activity) WorkerConfig(cfg *config.Config) config.WorkerConfig {
	wc := config.GetWorkerConfig(cfg, a.TaskType)
	if _, configured := cfg.Workers[a.TaskType]; !configured {
		wc.Timeout = int(a.TimeoutOr(config.GetDuration(wc.Timeout)) / time.Millisecond)
	}
	return wc
}

// SetInputSchema replaces the input schema with the given JSON schema
// document after checking that it compiles.
func (a *Activity) SetInputSchema(schemaJSON string) error {
	schema, err := validation.GetSchemaFromJSON(schemaJSON)
	if err != nil {
		return fmt.Errorf("decode input schema: %w", err)
	}
	if err := validation.CompileSchema(schema); err != nil {
		return err
	}
	a.InputSchema = schema
	return nil
}

// ValidateInput checks job variables against the activity input schema.
func (a *Activity) ValidateInput(variables string) (*validation.ValidationResult, error) {
	if a == nil {
		return &validation.ValidationResult{Valid: true}, nil
	}
	return validation.ValidateVariables(a.InputSchema, variables)
}

// invalidFields lists the declared input properties with at least one
// validation error, nested ones included.
func (a *Activity) invalidFields(result *validation.ValidationResult) []string {
	properties, _ := a.InputSchema["properties"].(map[string]interface{})
	fields := make([]string, 0, len(properties))
	for name := range properties {
		if len(result.GetErrorsForField(name)) > 0 {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// DecodeInput validates job variables against the input schema and decodes
// them into dest. Failures are returned as PARSE_ERROR or
// INPUT_VALIDATION_FAILED standard errors.
func (a *Activity) DecodeInput(variables string, dest interface{}) error {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	result, err := a.ValidateInput(variables)
	if err != nil {
		return errors.NewParseError(err)
	}
	if !result.Valid {
		return errors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("errors", result.Errors).
			WithMetadata("fields", a.invalidFields(result))
	}

	if err := json.Unmarshal([]byte(variables), dest); err != nil {
		return errors.NewParseError(err)
	}
	return nil
}
