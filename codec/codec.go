// Package codec converts between JSON or YAML text and jsonpatch documents
// and patches. Object key order is kept in both directions.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	jsonpatch "github.com/agentflare-ai/cowpatch"
)

// Format names an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// DecodeDocument decodes a JSON or YAML document.
func DecodeDocument(data []byte) (jsonpatch.Value, error) {
	raw, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return toValue(raw)
}

// decode reads valid JSON with decodeJSON and anything else as YAML. Objects
// come back as yaml.MapSlice either way.
func decode(data []byte) (any, error) {
	if json.Valid(data) {
		return decodeJSON(data)
	}
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return raw, nil
}

// DecodePatch decodes a JSON or YAML patch: a sequence of operation objects
// with "op", "path" and, depending on the op, "from" and "value" members. An
// absent "value" is left nil for Patch.Validate to report; an explicit null
// becomes jsonpatch.Null.
func DecodePatch(data []byte) (jsonpatch.Patch, error) {
	raw, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patch: %w", err)
	}
	if raw == nil {
		return jsonpatch.Patch{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("failed to decode patch: expected a sequence of operations, got %T", raw)
	}
	patch := make(jsonpatch.Patch, 0, len(items))
	for i, item := range items {
		op, err := decodeOperation(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode patch operation %d: %w", i, err)
		}
		patch = append(patch, op)
	}
	return patch, nil
}

func decodeOperation(item any) (jsonpatch.Operation, error) {
	var op jsonpatch.Operation
	members, ok := item.(yaml.MapSlice)
	if !ok {
		return op, fmt.Errorf("expected an object, got %T", item)
	}
	var hasOp, hasPath, hasFrom bool
	for _, m := range members {
		key := fmt.Sprint(m.Key)
		switch key {
		case "op", "path", "from":
			s, ok := m.Value.(string)
			if !ok {
				return op, fmt.Errorf("member %q must be a string, got %T", key, m.Value)
			}
			switch key {
			case "op":
				op.Op, hasOp = jsonpatch.Op(s), true
			case "path":
				op.Path, hasPath = s, true
			case "from":
				op.From, hasFrom = s, true
			}
		case "value":
			v, err := toValue(m.Value)
			if err != nil {
				return op, fmt.Errorf("member \"value\": %w", err)
			}
			op.Value = v
		}
	}
	switch {
	case !hasOp:
		return op, fmt.Errorf("missing member \"op\"")
	case !hasPath:
		return op, fmt.Errorf("missing member \"path\"")
	case !hasFrom && (op.Op == jsonpatch.Move || op.Op == jsonpatch.Copy):
		return op, fmt.Errorf("missing member \"from\" for %s", op.Op)
	}
	return op, nil
}

func toValue(raw any) (jsonpatch.Value, error) {
	switch x := raw.(type) {
	case yaml.MapSlice:
		fields := make([]jsonpatch.Field, 0, len(x))
		for _, m := range x {
			v, err := toValue(m.Value)
			if err != nil {
				return nil, err
			}
			fields = append(fields, jsonpatch.Field{Key: fmt.Sprint(m.Key), Value: v})
		}
		return jsonpatch.NewObject(fields...), nil
	case []any:
		items := make([]jsonpatch.Value, len(x))
		for i, item := range x {
			v, err := toValue(item)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return jsonpatch.NewArray(items...), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: non-finite number %v", jsonpatch.ErrUnsupportedType, x)
		}
		return jsonpatch.NewFloat(x), nil
	case time.Time:
		return jsonpatch.String(x.Format(time.RFC3339Nano)), nil
	}
	return jsonpatch.FromGo(raw)
}

// Encode writes v in the given format.
func Encode(w io.Writer, v jsonpatch.Value, format Format) error {
	switch format {
	case JSON:
		return EncodeJSON(w, v, true)
	case YAML:
		return EncodeYAML(w, v)
	}
	return fmt.Errorf("unknown format %q", format)
}

// EncodeJSON writes v as JSON followed by a newline.
func EncodeJSON(w io.Writer, v jsonpatch.Value, indent bool) error {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return err
	}
	out := buf.Bytes()
	if indent {
		var ib bytes.Buffer
		if err := json.Indent(&ib, out, "", "  "); err != nil {
			return err
		}
		out = ib.Bytes()
	}
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}

// MarshalJSON returns the compact JSON form of v.
func MarshalJSON(v jsonpatch.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v jsonpatch.Value) error {
	switch x := v.(type) {
	case jsonpatch.Null:
		buf.WriteString("null")
	case jsonpatch.Bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case jsonpatch.Number:
		f := x.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite number %v", jsonpatch.ErrUnsupportedType, f)
		}
		buf.WriteString(x.String())
	case jsonpatch.String:
		return writeJSONString(buf, string(x))
	case *jsonpatch.Array:
		buf.WriteByte('[')
		for i, item := range x.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *jsonpatch.Object:
		buf.WriteByte('{')
		first := true
		for k, item := range x.All() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", jsonpatch.ErrUnsupportedType, v)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// EncodeYAML writes v as YAML.
func EncodeYAML(w io.Writer, v jsonpatch.Value) error {
	out, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func toYAML(v jsonpatch.Value) any {
	switch x := v.(type) {
	case jsonpatch.Number:
		if i, ok := x.Int64(); ok {
			return i
		}
		return x.Float64()
	case *jsonpatch.Array:
		res := make([]any, 0, x.Len())
		for _, item := range x.All() {
			res = append(res, toYAML(item))
		}
		return res
	case *jsonpatch.Object:
		res := make(yaml.MapSlice, 0, x.Len())
		for k, item := range x.All() {
			res = append(res, yaml.MapItem{Key: k, Value: toYAML(item)})
		}
		return res
	}
	return jsonpatch.ToGo(v)
}
