package compare

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/dchest/siphash"

	"github.com/araddon/propeq/value"
)

// Fingerprint hash of a value such that Equal(a, b) implies
// Fingerprint(a) == Fingerprint(b).  Not the other way around, use it to
// bucket values before calling Equal.
func Fingerprint(v interface{}) uint64 {
	var buf bytes.Buffer
	writeCanonical(&buf, value.NewValue(v))
	return siphash.Hash(456729, 1111581582, buf.Bytes())
}

func writeCanonical(buf *bytes.Buffer, v value.Value) {
	k := v.Kind()
	if k.IsAbsent() {
		buf.WriteByte('~')
		return
	}
	buf.WriteString(k.String())
	buf.WriteByte(':')
	switch k {
	case value.ArrayKind:
		buf.WriteString(sortedText(v))
	case value.DateKind:
		if tv, ok := v.(value.Timed); ok {
			if tv.Valid() {
				buf.WriteString(strconv.FormatInt(value.EpochMillis(tv.Time()), 10))
			} else {
				buf.WriteString("invalid")
			}
			return
		}
		buf.WriteString(v.ToString())
	case value.ObjectKind, value.ClassKind:
		// only classes compare by type name, a struct named Object is a plain object
		if k == value.ClassKind {
			buf.WriteString(typeName(v))
		}
		buf.WriteByte('{')
		keys := append([]string(nil), keysOf(v)...)
		sort.Strings(keys)
		for _, key := range keys {
			kv := lookup(v, key)
			// absent values are equal to missing keys
			if kv.Kind().IsAbsent() {
				continue
			}
			buf.WriteString(strconv.Quote(key))
			buf.WriteByte('=')
			writeCanonical(buf, kv)
			buf.WriteByte(';')
		}
		buf.WriteByte('}')
	case value.FuncKind:
		if fv, ok := v.(value.FuncValue); ok {
			buf.WriteString(strconv.FormatUint(uint64(fv.Pointer()), 16))
			return
		}
		buf.WriteString(v.ToString())
	default:
		buf.WriteString(v.ToString())
	}
}
