package endpoints

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"
)

// CanonicalJSON serializes v compactly with object keys sorted at every
// level. It is used both for GraphQL variables in URLs and as the input of
// the request signature, so the two always agree.
func CanonicalJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, generic); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, t[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return writeScalar(buf, t)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, v any) error {
	var enc []byte
	var err error
	if n, ok := v.(json.Number); ok {
		enc = []byte(n.String())
	} else {
		enc, err = json.MarshalWithOption(v, json.DisableHTMLEscape())
		if err != nil {
			return err
		}
	}
	buf.Write(enc)
	return nil
}
