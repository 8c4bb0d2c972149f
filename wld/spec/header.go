package spec

import (
	"fmt"
	"iter"
	"log/slog"
)

// Value is a decoded header scalar or array.
type Value struct {
	Type  FieldType
	Array bool

	i   int64
	f   float64
	s   string
	arr []Value
}

func intValue(t FieldType, v int64) Value {
	return Value{Type: t, i: v, f: float64(v)}
}

func floatValue(t FieldType, v float64) Value {
	return Value{Type: t, i: int64(v), f: v}
}

func stringValue(v string) Value {
	return Value{Type: FieldString, s: v}
}

// Int returns the integer value; floats are truncated, strings and arrays are 0.
func (v Value) Int() int { return int(v.i) }

func (v Value) Int64() int64 { return v.i }

func (v Value) Float() float64 { return v.f }

func (v Value) Bool() bool { return v.i != 0 }

func (v Value) Str() string { return v.s }

// Len returns the number of array elements, 0 for scalars.
func (v Value) Len() int { return len(v.arr) }

// At returns array element i, or the zero Value when out of range.
func (v Value) At(i int) Value {
	if i < 0 || i >= len(v.arr) {
		return Value{Type: v.Type}
	}
	return v.arr[i]
}

func (v Value) Values() []Value { return v.arr }

func (v Value) String() string {
	switch {
	case v.Array:
		return fmt.Sprint(v.arr)
	case v.Type == FieldString:
		return v.s
	case v.Type == FieldFloat32 || v.Type == FieldFloat64:
		return fmt.Sprint(v.f)
	case v.Type == FieldBool:
		return fmt.Sprint(v.i != 0)
	default:
		return fmt.Sprint(v.i)
	}
}

// Header holds the named values of a world header in wire order.
type Header struct {
	names  []string
	values map[string]Value
	logger *slog.Logger
}

func NewHeader(logger *slog.Logger) *Header {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Header{values: make(map[string]Value), logger: logger}
}

func (h *Header) set(name string, v Value) {
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = v
}

// Lookup returns the named value and whether it was present.
func (h *Header) Lookup(name string) (Value, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Get returns the named value. A missing key is logged and yields the zero Value.
func (h *Header) Get(name string) Value {
	v, ok := h.values[name]
	if !ok {
		h.logger.Warn("libworld: header key not found", "key", name)
	}
	return v
}

func (h *Header) Has(name string) bool {
	_, ok := h.values[name]
	return ok
}

func (h *Header) Int(name string) int { return h.Get(name).Int() }

func (h *Header) Float(name string) float64 { return h.Get(name).Float() }

func (h *Header) Str(name string) string { return h.Get(name).Str() }

// Is reports whether the named flag is present and non-zero; a missing key
// is not logged.
func (h *Header) Is(name string) bool {
	return h.values[name].Bool()
}

func (h *Header) Len() int { return len(h.names) }

// Names returns the field names in wire order.
func (h *Header) Names() []string { return h.names }

func (h *Header) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range h.names {
			if !yield(name, h.values[name]) {
				return
			}
		}
	}
}

// TreeStyle returns the tree style index of column x.
func (h *Header) TreeStyle(x int) int {
	xs := h.Get("treeX")
	i := 0
	for ; i < xs.Len(); i++ {
		if x <= xs.At(i).Int() {
			break
		}
	}
	switch style := h.Get("treeStyle").At(i).Int(); style {
	case 0:
		return 0
	case 5:
		return 10
	default:
		return style + 5
	}
}

// DecodeHeader reads every schema field present in the given version.
func DecodeHeader(c *Cursor, schema Schema, version int, logger *slog.Logger) (*Header, error) {
	h := NewHeader(logger)
	for _, field := range schema {
		if !field.InVersion(version) {
			continue
		}
		if !field.Array {
			h.set(field.Name, readScalar(c, field.Type))
		} else {
			n := field.Length
			if field.LengthFrom != "" {
				dep, ok := h.values[field.LengthFrom]
				if !ok {
					return nil, fmt.Errorf("%w: %s length field %q absent in version %d",
						ErrSchema, field.Name, field.LengthFrom, version)
				}
				n = dep.Int()
			}
			if n < 0 || n > c.Remaining() {
				c.fail(max(n, 0))
				return nil, c.Err()
			}
			arr := make([]Value, 0, n)
			for range n {
				arr = append(arr, readScalar(c, field.Type))
			}
			h.set(field.Name, Value{Type: field.Type, Array: true, arr: arr})
		}
		if err := c.Err(); err != nil {
			return nil, fmt.Errorf("header field %s: %w", field.Name, err)
		}
	}
	return h, nil
}

func readScalar(c *Cursor, t FieldType) Value {
	switch t {
	case FieldBool, FieldByte:
		return intValue(t, int64(c.U8()))
	case FieldInt16:
		return intValue(t, int64(c.I16()))
	case FieldInt32:
		return intValue(t, int64(c.I32()))
	case FieldInt64:
		return intValue(t, int64(c.U64()))
	case FieldFloat32:
		return floatValue(t, float64(c.F32()))
	case FieldFloat64:
		return floatValue(t, c.F64())
	default:
		return stringValue(c.String())
	}
}
