package prompt

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/randalmurphal/readmegen/parser"
)

// Feature is one row of the generated feature table.
type Feature struct {
	// Name is the short feature name shown in the table's first column.
	Name string `json:"name" jsonschema:"minLength=1,description=Short feature name"`

	// Description explains the feature in one sentence.
	Description string `json:"description" jsonschema:"minLength=1,description=One-sentence description"`
}

var (
	schemaOnce sync.Once
	schemaJSON string
	schemaErr  error
)

// FeatureSchema returns the JSON Schema for the feature rows the Features
// template asks the model to produce. The schema is reflected from the
// Feature type once and reused.
func FeatureSchema() (string, error) {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{DoNotReference: true}
		schema := reflector.Reflect(&Feature{})
		raw, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			schemaErr = err
			return
		}
		schemaJSON = string(raw)
	})
	return schemaJSON, schemaErr
}

// ParseFeatures decodes the model's response to the Features template into
// feature rows. The response may carry the JSON array inside a fenced code
// block or inline.
func ParseFeatures(response string) ([]Feature, error) {
	rows := parser.NewParser().ExtractJSONArray(response)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no feature rows found in response")
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	var features []Feature
	if err := json.Unmarshal(raw, &features); err != nil {
		return nil, fmt.Errorf("decode feature rows: %w", err)
	}

	kept := features[:0]
	for _, f := range features {
		if f.Name != "" {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no usable feature rows in response")
	}
	return kept, nil
}
