// Package jsonvalue is the JSON-decoding collaborator named in spec.md §6:
// it turns raw JSON bytes into the closed types.Value sum type, preserving
// the integer/double distinction spec.md §3 requires. It is used at the
// input/output boundary of Expression.Search, by the lexer to decode
// backtick JSON literals, and by the to_string built-in to encode values.
//
// encoding/json with UseNumber is sufficient here: preserving integrality
// only requires inspecting whether the decoded json.Number's literal
// text contains '.' or an exponent, which is exactly what json.Number
// already carries. Pulling in a third-party JSON decoder would only
// relocate that check, not remove it, so the standard library is used
// directly (see DESIGN.md).
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gojmespath/gojmespath/pkg/types"
)

// Decode parses JSON bytes into a types.Value.
func Decode(data []byte) (types.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return types.Null, fmt.Errorf("jsonvalue: decode: %w", err)
	}
	return FromGo(raw)
}

// DecodeString parses a JSON string into a types.Value.
func DecodeString(s string) (types.Value, error) {
	return Decode([]byte(s))
}

// FromGo converts a value produced by encoding/json (with UseNumber
// enabled) into a types.Value. It also accepts plain float64/int/etc for
// convenience when callers build fixtures without going through the JSON
// decoder.
func FromGo(x interface{}) (types.Value, error) {
	switch v := x.(type) {
	case nil:
		return types.Null, nil
	case types.Value:
		return v, nil
	case json.Number:
		return numberFromLiteral(string(v))
	case string:
		return types.String(v), nil
	case bool:
		return types.Bool(v), nil
	case int:
		return types.IntValue(int64(v)), nil
	case int64:
		return types.IntValue(v), nil
	case float64:
		return types.FloatValue(v), nil
	case []interface{}:
		items := make([]types.Value, 0, len(v))
		for _, e := range v {
			cv, err := FromGo(e)
			if err != nil {
				return types.Null, err
			}
			items = append(items, cv)
		}
		return types.Array(items), nil
	case map[string]interface{}:
		entries := make(map[string]types.Value, len(v))
		for k, e := range v {
			cv, err := FromGo(e)
			if err != nil {
				return types.Null, err
			}
			entries[k] = cv
		}
		return types.Object(entries), nil
	default:
		return types.Null, fmt.Errorf("jsonvalue: unsupported Go type %T", x)
	}
}

// numberFromLiteral preserves integrality the way the lexer's literal-JSON
// handling and the JSON decoder both need: a literal with no '.' or
// exponent decodes as an integer, everything else as a double.
func numberFromLiteral(lit string) (types.Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return types.IntValue(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return types.Null, fmt.Errorf("jsonvalue: invalid number literal %q: %w", lit, err)
	}
	return types.FloatValue(f), nil
}

// Encode renders v as canonical JSON. It fails for ExpressionRef, which
// has no JSON form (§4.1).
func Encode(v types.Value) ([]byte, error) {
	goVal, err := toGo(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(goVal)
}

// ToGo converts v into plain Go values (nil, string, bool, int64,
// float64, []interface{}, map[string]interface{}), the inverse of FromGo.
// It is the boundary the package root's Search convenience function uses
// to hand a result back to a caller that never imports pkg/types.
func ToGo(v types.Value) (interface{}, error) {
	return toGo(v)
}

func toGo(v types.Value) (interface{}, error) {
	switch v.Kind() {
	case types.KindNull:
		return nil, nil
	case types.KindString:
		s, _ := v.AsString()
		return s, nil
	case types.KindBoolean:
		b, _ := v.AsBool()
		return b, nil
	case types.KindNumber:
		n, _ := v.AsNumber()
		if i, ok := n.Int64(); ok {
			return i, nil
		}
		return n.Float64(), nil
	case types.KindArray:
		arr, _ := v.AsArray()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			gv, err := toGo(e)
			if err != nil {
				return nil, err
			}
			out[i] = gv
		}
		return out, nil
	case types.KindObject:
		obj, _ := v.AsObject()
		out := make(map[string]interface{}, len(obj))
		for k, e := range obj {
			gv, err := toGo(e)
			if err != nil {
				return nil, err
			}
			out[k] = gv
		}
		return out, nil
	default: // KindExprRef
		return nil, fmt.Errorf("jsonvalue: expression reference has no JSON form")
	}
}
