package odata

import (
	"fmt"
	"strconv"
	"strings"
)

// Literal renders a scalar parameter value as an OData v2 URL literal.
// Strings are single-quoted with embedded quotes doubled; numbers and booleans
// are rendered bare; nil becomes null. Anything else is stringified and
// quoted.
func Literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		// Integral floats (the usual outcome of YAML/JSON decoding) render
		// without a fractional part.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return "'" + strings.ReplaceAll(t.String(), "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", t), "'", "''") + "'"
	}
}
