// Package answers validates survey submissions against their questions and
// converts submitted answer values into the shape that is stored.
package answers

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Normalize converts an arbitrary decoded value into a JSON-safe value:
// strings, numbers and booleans pass through, sequences become []any and
// string-keyed maps become map[string]any, both normalised recursively.
// Anything else is replaced by its textual form. Normalize never fails.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return "null"
	case string, bool, json.Number:
		return v
	case float64:
		return normalizeFloat(v)
	case float32:
		return normalizeFloat(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Normalize(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = Normalize(elem)
		}
		return out
	}

	return normalizeReflect(reflect.ValueOf(value))
}

func normalizeReflect(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		if s, ok := textual(rv); ok {
			return s
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return []any{}
		}
		fallthrough
	case reflect.Array:
		if s, ok := textual(rv); ok {
			return s
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return normalizeFloat(rv.Float())
	}

	if s, ok := textual(rv); ok {
		return s
	}
	return fmt.Sprint(rv.Interface())
}

// textual returns the String or Error form of values that define one, so that
// types like time.Time or net.IP are stored as text rather than as their
// underlying representation.
func textual(rv reflect.Value) (string, bool) {
	if !rv.CanInterface() {
		return "", false
	}
	switch v := rv.Interface().(type) {
	case fmt.Stringer:
		return v.String(), true
	case error:
		return v.Error(), true
	}
	return "", false
}

func normalizeFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}
	return f
}
