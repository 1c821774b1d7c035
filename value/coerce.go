package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber numeric text conversion, same rules as a javascript
// Number(text):
//
//   "  12 "         =>  12
//   ""              =>  0
//   "0x1f"          =>  31    (also 0o, 0b)
//   "-Infinity"     =>  -Inf
//   "1,000", "abc"  =>  NaN, false
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base > 0 {
			return parseRadix(s[2:], base)
		}
	}
	if !decimalRe.MatchString(s) {
		return math.NaN(), false
	}
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			// overflow is +-Inf, underflow 0, same as javascript
			return fv, true
		}
		return math.NaN(), false
	}
	return fv, true
}

// parseRadix integer digits of any width in base 16, 8 or 2, rounded to
// the nearest float64 (+Inf past the float range).
func parseRadix(digits string, base int) (float64, bool) {
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return math.NaN(), false
	}
	if iv, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(iv), true
	}
	bi, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN(), false
	}
	f, _ := new(big.Float).SetInt(bi).Float64()
	return f, true
}

// FormatNumber renders a number the way javascript does, shortest
// representation, exponent form only for very large or small values.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// also -0
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToPlain converts a Value into plain json-ish go values:  map[string]interface{},
// []interface{}, float64, string, bool, time.Time and nil.  Class values
// become maps of their keys.
func ToPlain(v Value) interface{} {
	switch vt := v.(type) {
	case nil, UndefinedValue, NullValue:
		return nil
	case MapValue:
		mv := make(map[string]interface{}, len(vt.v))
		for k, kv := range vt.v {
			mv[k] = ToPlain(kv)
		}
		return mv
	case SliceValue:
		vals := make([]interface{}, len(vt.v))
		for i, sv := range vt.v {
			vals[i] = ToPlain(sv)
		}
		return vals
	case TimeValue:
		if !vt.Valid() {
			return nil
		}
		return vt.v
	case StructValue:
		keys := vt.Keys()
		if len(keys) == 0 {
			return vt.v
		}
		mv := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			kv, _ := vt.Get(k)
			mv[k] = ToPlain(kv)
		}
		return mv
	}
	return v.Value()
}

// jsonString json text of v.  Values json can't encode (NaN, Inf, funcs)
// fall back to the same layout with those rendered as text.
func jsonString(v Value) string {
	by, err := json.Marshal(ToPlain(v))
	if err == nil {
		return string(by)
	}
	var buf bytes.Buffer
	writeJSONish(&buf, v)
	return buf.String()
}

func writeJSONish(buf *bytes.Buffer, v Value) {
	switch vt := v.(type) {
	case MapValue, StructValue:
		kv := v.(Keyed)
		keys := append([]string(nil), kv.Keys()...)
		if _, isStruct := v.(StructValue); isStruct && len(keys) == 0 {
			buf.WriteString(strconv.Quote(v.ToString()))
			return
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(key))
			buf.WriteByte(':')
			ev, _ := kv.Get(key)
			writeJSONish(buf, ev)
		}
		buf.WriteByte('}')
	case SliceValue:
		buf.WriteByte('[')
		for i, ev := range vt.v {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONish(buf, ev)
		}
		buf.WriteByte(']')
	case UndefinedValue, NullValue:
		buf.WriteString("null")
	case TimeValue:
		if !vt.Valid() {
			buf.WriteString("null")
			return
		}
		buf.WriteString(strconv.Quote(vt.v.Format(time.RFC3339Nano)))
	case StringValue, FuncValue:
		buf.WriteString(strconv.Quote(v.ToString()))
	default:
		// numbers (including NaN, Infinity) and booleans
		buf.WriteString(v.ToString())
	}
}
