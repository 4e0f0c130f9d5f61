package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coerce normalizes a raw submitted value to the field's declared kind.
// Submissions arrive both as typed JSON and as form-data strings, so string
// renditions of booleans, numbers and lists are accepted.
func Coerce(spec FieldSpec, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	switch spec.Kind {
	case KindString, KindText:
		return toString(value), nil
	case KindBool:
		return toBool(value), nil
	case KindDecimal:
		return toFloat(spec.Name, value)
	case KindInt:
		f, err := toFloat(spec.Name, value)
		if err != nil {
			return nil, err
		}
		return int64(f.(float64)), nil
	case KindStringList:
		return toStringList(value), nil
	case KindJSONMap:
		return toMap(spec.Name, value)
	default:
		return value, nil
	}
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

func toFloat(name string, v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("field %s: not a number: %q", name, t.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, fmt.Errorf("field %s: not a number: %q", name, t)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("field %s: not a number", name)
	}
}

// toStringList accepts real arrays plus the two form-data conventions the
// frontends use: comma-separated and newline-separated strings.
func toStringList(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return trimAll(t)
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, toString(e))
		}
		return trimAll(out)
	case string:
		sep := ","
		if strings.Contains(t, "\n") {
			sep = "\n"
		}
		return trimAll(strings.Split(t, sep))
	default:
		return nil
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toMap(name string, v interface{}) (map[string]interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, nil
	case string:
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(t), &m); err != nil {
			return nil, fmt.Errorf("field %s: not an object", name)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("field %s: not an object", name)
	}
}
