package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}

// SettingsSchema returns a JSON Schema describing settings.json, suitable
// for editor validation and docs.
func SettingsSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	sch := r.Reflect(&Settings{})
	sch.Title = "opencli-mcp settings"
	sch.Description = "Runtime settings for the opencli-mcp server (timeouts, ops endpoint, disabled tools)."
	return sch
}
