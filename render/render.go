package render

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/vlazaroes/jsoninja"
)

// Renderer decodes a document, substitutes placeholders,
// and encodes the result. A nil Engine uses the default
// {{name}} pattern.
type Renderer struct {
	Engine *jsoninja.Engine
}

// JSON substitutes placeholders in a JSON document and
// returns the re-encoded result.
func (r Renderer) JSON(
	data []byte,
	replacements map[string]interface{},
) ([]byte, error) {
	const errCtx = "rendering json"

	var doc interface{}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(
			"%s: decoding: %w", errCtx, err,
		)
	}

	out, err := r.engine().Replace(doc, replacements)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: encoding: %w", errCtx, err,
		)
	}

	return encoded, nil
}

// YAML substitutes placeholders in a YAML document and
// returns the re-encoded result.
func (r Renderer) YAML(
	data []byte,
	replacements map[string]interface{},
) ([]byte, error) {
	const errCtx = "rendering yaml"

	var doc interface{}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(
			"%s: decoding: %w", errCtx, err,
		)
	}

	out, err := r.engine().Replace(doc, replacements)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	encoded, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: encoding: %w", errCtx, err,
		)
	}

	return encoded, nil
}

func (r Renderer) engine() *jsoninja.Engine {
	if r.Engine != nil {
		return r.Engine
	}

	return jsoninja.New()
}

// JSON substitutes placeholders in a JSON document using
// the default engine.
func JSON(
	data []byte,
	replacements map[string]interface{},
) ([]byte, error) {
	return Renderer{}.JSON(data, replacements)
}

// YAML substitutes placeholders in a YAML document using
// the default engine.
func YAML(
	data []byte,
	replacements map[string]interface{},
) ([]byte, error) {
	return Renderer{}.YAML(data, replacements)
}
