package schemas

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/jonathan/portfolio-resume/internal/types"
)

// DraftVersion is the JSON Schema dialect emitted for reflected schemas.
const DraftVersion = "http://json-schema.org/draft-07/schema#"

var (
	candidateOnce   sync.Once
	candidateSchema *jsonschema.Schema
	candidateJSON   string
	candidateErr    error
)

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
}

func loadCandidateSchema() {
	s := newReflector().Reflect(&types.CandidateRecord{})
	s.Version = DraftVersion
	s.Title = "CandidateRecord"
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		candidateErr = &SchemaLoadError{Path: "(reflected CandidateRecord)", Message: "failed to marshal schema", Cause: err}
		return
	}
	candidateSchema = s
	candidateJSON = string(raw)
}

// CandidateSchema returns the JSON Schema reflected from types.CandidateRecord.
// Fields without omitempty are required.
func CandidateSchema() (*jsonschema.Schema, error) {
	candidateOnce.Do(loadCandidateSchema)
	return candidateSchema, candidateErr
}

// CandidateSchemaJSON returns CandidateSchema as indented JSON.
func CandidateSchemaJSON() (string, error) {
	candidateOnce.Do(loadCandidateSchema)
	return candidateJSON, candidateErr
}

// ValidateCandidateJSON validates raw against the CandidateRecord schema.
// Malformed JSON is reported as a *ValidationError at the root.
func ValidateCandidateJSON(raw string) error {
	schema, err := CandidateSchemaJSON()
	if err != nil {
		return err
	}
	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "malformed JSON: " + err.Error()}}}
	}
	return ValidateJSONString(schema, raw)
}
