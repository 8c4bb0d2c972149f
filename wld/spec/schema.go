package spec

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
)

type FieldType uint8

const (
	FieldBool FieldType = iota
	FieldByte
	FieldInt16
	FieldInt32
	FieldInt64
	FieldFloat32
	FieldFloat64
	FieldString
)

var fieldTypeTags = map[string]FieldType{
	"b":   FieldBool,
	"u8":  FieldByte,
	"i16": FieldInt16,
	"i32": FieldInt32,
	"i64": FieldInt64,
	"f32": FieldFloat32,
	"f64": FieldFloat64,
	"s":   FieldString,
}

func (t FieldType) String() string {
	for tag, ft := range fieldTypeTags {
		if ft == t {
			return tag
		}
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// Field describes one header value. Fields are decoded in declaration order.
type Field struct {
	Name string
	Type FieldType
	// Array fields hold Length values, or the value of the previously decoded
	// integer field LengthFrom when it is set.
	Array      bool
	Length     int
	LengthFrom string
	MinVersion int
	// MaxVersion 0 means the field is still current.
	MaxVersion int
}

// InVersion reports whether the field exists in files of the given version.
func (f *Field) InVersion(version int) bool {
	return version >= f.MinVersion && (f.MaxVersion == 0 || version <= f.MaxVersion)
}

// Schema is the ordered field list of the world header.
type Schema []Field

// ParseSchema parses a JSON field list. Every dynamic length must refer to a
// non-array integer field declared earlier.
func ParseSchema(data []byte) (Schema, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrSchema)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: schema isn't an array", ErrSchema)
	}
	raw := root.Array()

	schema := make(Schema, 0, len(raw))
	declared := make(map[string]*Field, len(raw))
	for i, obj := range raw {
		name := obj.Get("name").String()
		if name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrSchema, i)
		}
		tag := obj.Get("type").String()
		if tag == "" {
			tag = "b"
		}
		ft, ok := fieldTypeTags[tag]
		if !ok {
			return nil, fmt.Errorf("%w: invalid type %q on %s", ErrSchema, tag, name)
		}

		field := Field{
			Name:       name,
			Type:       ft,
			LengthFrom: obj.Get("relnum").String(),
			MinVersion: MinimumVersion,
			MaxVersion: int(obj.Get("max").Int()),
		}
		if minVersion := obj.Get("min"); minVersion.Exists() {
			field.MinVersion = int(minVersion.Int())
		}
		num := obj.Get("num")
		if num.Exists() || field.LengthFrom != "" {
			switch ft {
			case FieldByte, FieldInt32, FieldString:
			default:
				return nil, fmt.Errorf("%w: %s cannot be an array of %v", ErrSchema, name, ft)
			}
			field.Array = true
			field.Length = int(num.Int())
		}
		if field.LengthFrom != "" {
			dep, ok := declared[field.LengthFrom]
			if !ok {
				return nil, fmt.Errorf("%w: %s length refers to undeclared field %q",
					ErrSchema, name, field.LengthFrom)
			}
			if dep.Array || dep.Type == FieldString || dep.Type == FieldFloat32 || dep.Type == FieldFloat64 {
				return nil, fmt.Errorf("%w: %s length field %q is not an integer",
					ErrSchema, name, field.LengthFrom)
			}
		}

		schema = append(schema, field)
		declared[field.Name] = &schema[len(schema)-1]
	}
	return schema, nil
}

// Fields returns the fields present in files of the given version.
func (s Schema) Fields(version int) []Field {
	fields := make([]Field, 0, len(s))
	for _, f := range s {
		if f.InVersion(version) {
			fields = append(fields, f)
		}
	}
	return fields
}

//go:embed header.json
var defaultSchemaData []byte

var defaultSchema = sync.OnceValues(func() (Schema, error) {
	return ParseSchema(defaultSchemaData)
})

// DefaultSchema returns the built-in header layout covering versions
// MinimumVersion through HighestVersion.
func DefaultSchema() Schema {
	schema, err := defaultSchema()
	if err != nil {
		panic(err)
	}
	return schema
}
