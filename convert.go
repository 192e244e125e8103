package jsonpatch

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// FromGo converts a decoded Go value into a document. It accepts the types
// produced by encoding/json (including json.Number), Go integer and float
// types, []any, map[string]any and Values. Map keys are sorted since Go maps
// carry no order.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return NewInt(int64(x)), nil
	case int8:
		return NewInt(int64(x)), nil
	case int16:
		return NewInt(int64(x)), nil
	case int32:
		return NewInt(int64(x)), nil
	case int64:
		return NewInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return NewInt(int64(x)), nil
	case uint16:
		return NewInt(int64(x)), nil
	case uint32:
		return NewInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return NewFloat(float64(x)), nil
	case float64:
		return NewFloat(x), nil
	case json.Number:
		return ParseNumber(string(x))
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			iv, err := FromGo(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = iv
		}
		return &Array{items: items}, nil
	case map[string]any:
		fields := make([]Field, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			fv, err := FromGo(x[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			fields = append(fields, Field{Key: k, Value: fv})
		}
		return NewObject(fields...), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func fromUint(u uint64) Value {
	if u > 1<<63-1 {
		return NewFloat(float64(u))
	}
	return NewInt(int64(u))
}

// ToGo converts a document into the plain Go form used by encoding/json:
// nil, bool, float64, string, []any and map[string]any.
func ToGo(v Value) any {
	switch x := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(x)
	case Number:
		return x.Float64()
	case String:
		return string(x)
	case *Array:
		res := make([]any, len(x.items))
		for i, item := range x.items {
			res[i] = ToGo(item)
		}
		return res
	case *Object:
		res := make(map[string]any, len(x.fields))
		for k, item := range x.fields {
			res[k] = ToGo(item)
		}
		return res
	}
	return nil
}
