package host

import (
	"bytes"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/d-fournier/wrappy/errors"
)

// rawTypeRef has TypeRef's fields without its unmarshal methods.
type rawTypeRef TypeRef

// UnmarshalYAML accepts either a type expression scalar or a mapping.
func (t *TypeRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var expr string
		if err := value.Decode(&expr); err != nil {
			return err
		}
		parsed, err := ParseType(expr)
		if err != nil {
			return errors.Wrapf(err, "line %d", value.Line)
		}
		*t = parsed
		return nil
	}

	var raw rawTypeRef
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*t = TypeRef(raw)
	return errors.Wrapf(t.validate(), "line %d", value.Line)
}

// UnmarshalJSON accepts either a type expression string or an object.
func (t *TypeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var expr string
		if err := json.Unmarshal(data, &expr); err != nil {
			return err
		}
		parsed, err := ParseType(expr)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var raw rawTypeRef
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TypeRef(raw)
	return t.validate()
}

// UnmarshalTOML accepts either a type expression string or an inline table.
func (t *TypeRef) UnmarshalTOML(value interface{}) error {
	parsed, err := typeRefFromTOML(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func typeRefFromTOML(value interface{}) (TypeRef, error) {
	switch v := value.(type) {
	case string:
		return ParseType(v)
	case map[string]interface{}:
		var ref TypeRef
		if kind, ok := v["kind"].(string); ok {
			ref.Kind = TypeKind(kind)
		}
		if name, ok := v["name"].(string); ok {
			ref.Name = name
		}
		if args, ok := v["args"].([]interface{}); ok {
			for _, a := range args {
				arg, err := typeRefFromTOML(a)
				if err != nil {
					return TypeRef{}, err
				}
				ref.Args = append(ref.Args, arg)
			}
		}
		if elem, ok := v["elem"]; ok {
			e, err := typeRefFromTOML(elem)
			if err != nil {
				return TypeRef{}, err
			}
			ref.Elem = &e
		}
		return ref, ref.validate()
	default:
		return TypeRef{}, errors.NewInvalidRequestError("type must be a string or a table, got %T", value)
	}
}

// validate checks a mapping-form mirror for internal consistency.
func (t TypeRef) validate() error {
	if !t.Kind.Valid() {
		return errors.NewInvalidRequestError("unknown type kind %q", t.Kind)
	}
	switch t.Kind {
	case KindDeclared, KindTypeVar, KindError:
		if t.Name == "" {
			return errors.NewInvalidRequestError("%s type requires a name", t.Kind)
		}
	case KindArray:
		if t.Elem == nil {
			return errors.NewInvalidRequestError("array type requires an elem")
		}
	}
	return nil
}
