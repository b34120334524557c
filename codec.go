package responsive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Codec defines the deserialization contract for spec and value documents.
// Implement this interface to use alternative formats like TOML, HCL, or custom binary formats.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

// UnmarshalYAML decodes a mapping into a Spec, keeping key order.
// A root that is not a mapping yields a KindNotObject diagnostic.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return &Diagnostic{Kind: KindNotObject, Type: yamlTypeName(node)}
	}

	spec := make(Spec, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("breakpoint %q: %w", node.Content[i].Value, err)
		}
		spec = append(spec, Entry{Name: node.Content[i].Value, Value: value})
	}
	*s = spec
	return nil
}

// UnmarshalJSON decodes an object into a Spec, keeping key order.
// A root that is not an object yields a KindNotObject diagnostic; null leaves
// the Spec nil, selecting the default table.
func (s *Spec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		var root any
		if err := json.Unmarshal(data, &root); err != nil {
			return err
		}
		return &Diagnostic{Kind: KindNotObject, Type: typeName(root)}
	}

	spec := Spec{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("breakpoint %q: %w", name, err)
		}
		spec = append(spec, Entry{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = spec
	return nil
}

// DecodeSpec decodes a breakpoint spec document. An empty or null document
// yields a nil Spec, which selects the default table.
//
// When the document root is not a mapping the returned error is a
// *Diagnostic of kind KindNotObject.
func DecodeSpec(data []byte, codec Codec) (Spec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var spec Spec
	if err := codec.Unmarshal(data, &spec); err != nil {
		var d *Diagnostic
		if errors.As(err, &d) {
			return nil, d
		}
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	return spec, nil
}

// DecodeValues decodes a value mapping document.
//
// When the document root is not a mapping the returned error is a
// *Diagnostic of kind KindNotResponsiveObject.
func DecodeValues[V any](data []byte, codec Codec) (map[string]V, error) {
	var root any
	if err := codec.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	if root == nil || reflect.ValueOf(root).Kind() != reflect.Map {
		return nil, &Diagnostic{Kind: KindNotResponsiveObject, Type: typeName(root)}
	}

	var values map[string]V
	if err := codec.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}

func yamlTypeName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return node.ShortTag()
		}
		return typeName(v)
	default:
		return "undefined"
	}
}
