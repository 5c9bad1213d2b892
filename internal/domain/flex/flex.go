// Package flex holds JSON field types that accept the loosely typed values
// clients send for free-form account and enrollment fields.
package flex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CastError reports a value that cannot be turned into the field's type.
type CastError struct {
	Kind  string
	Value string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast %s to %s", e.Value, e.Kind)
}

// String accepts a JSON string, number, boolean or null.
type String string

func (s *String) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = String(v)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = String(data)
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return &CastError{Kind: "string", Value: string(data)}
		}
		*s = String(strconv.FormatFloat(f, 'f', -1, 64))
	}

	return nil
}

// Number accepts a JSON number, a numeric string, a boolean or null.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*n = 0
	case bytes.Equal(data, []byte("true")):
		*n = 1
	case bytes.Equal(data, []byte("false")):
		*n = 0
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}

		v = strings.TrimSpace(v)
		if v == "" {
			*n = 0
			return nil
		}

		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &CastError{Kind: "number", Value: string(data)}
		}
		*n = Number(f)
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return &CastError{Kind: "number", Value: string(data)}
		}
		*n = Number(f)
	}

	return nil
}
