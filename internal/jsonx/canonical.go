// Package jsonx provides a canonical JSON encoding: object keys are written
// in lexicographic order and numbers keep their literal decimal form, so two
// structurally equal values always encode to byte-identical output regardless
// of field declaration or assignment order. The output is used as
// authenticated associated data, where any byte difference matters.
package jsonx

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/sealvault/sealvault-core/internal/common"
)

// Canonical encodes v as canonical JSON. v must be JSON-marshalable; a
// marshal or re-encode failure indicates a programming error and is fatal.
func Canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, common.Fatalf("canonical json: marshal: %w", err)
	}

	var decoded any
	dec := json.NewDecoder(bytes.NewReader(raw))
	// Keep numbers as their literal decimal text instead of float64 so the
	// output never depends on platform float formatting.
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, common.Fatalf("canonical json: decode: %w", err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, decoded); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(val.String())
	case string:
		encoded, err := json.Marshal(val)
		if err != nil {
			return common.Fatalf("canonical json: string: %w", err)
		}
		buf.Write(encoded)
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodedKey, err := json.Marshal(k)
			if err != nil {
				return common.Fatalf("canonical json: key: %w", err)
			}
			buf.Write(encodedKey)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return common.Fatalf("canonical json: unsupported type %T", v)
	}
	return nil
}
