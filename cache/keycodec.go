package cache

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// BuildKey builds a deterministic cache key from a namespace, an operation
// name and a parameter map. Parameter names are sorted before serialization,
// so two logically identical requests always yield the same key regardless
// of map insertion order.
//
// Only scalar values (string, bool, signed/unsigned integers, floats, nil)
// and slices or arrays of scalars are accepted; anything else fails with
// ErrInvalidKeyInput. Strings are quoted so the int 1 and the string "1"
// never collide.
func BuildKey(namespace, operation string, params map[string]any) (string, error) {
	if namespace == "" || operation == "" {
		return "", ErrInvalidKeyInput.WithMsg("namespace and operation are required")
	}

	var b strings.Builder
	b.WriteString(namespace)
	b.WriteByte(':')
	b.WriteString(operation)

	if len(params) == 0 {
		return b.String(), nil
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteByte('?')
	for i, name := range names {
		encoded, err := encodeValue(params[name])
		if err != nil {
			return "", ErrInvalidKeyInput.WithMsgf("param %q: %v", name, err)
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(encoded)
	}

	return b.String(), nil
}

// encodeValue serializes a scalar or a slice/array of scalars.
func encodeValue(v any) (string, error) {
	if s, err := encodeScalar(v); err == nil {
		return s, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", fmt.Errorf("unsupported type %T", v)
	}

	parts := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, err := encodeScalar(rv.Index(i).Interface())
		if err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func encodeScalar(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case string:
		return strconv.Quote(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}
