// Value package defines the semantic kinds (undefined, null, string, etc)
// and a closed set of Value types used to classify loosely typed data
// such as decoded json payloads, without callers needing reflection.
package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/leekchan/timeutil"
	"github.com/pborman/uuid"
)

var (
	// Undefined is the absent marker, ie a value that was never supplied.
	// Use it for missing keys or unset arguments, nil is Null.
	Undefined = UndefinedValue{}

	NullValueVal     = NewNullValue()
	BoolValueTrue    = BoolValue{v: true}
	BoolValueFalse   = BoolValue{v: false}
	EmptyStringValue = NewStringValue("")
	EmptyMapValue    = NewMapValue(nil)

	// force some types to implement interfaces
	_ Value = (StringValue)(EmptyStringValue)
	_ Keyed = (MapValue)(EmptyMapValue)
	_ Keyed = StructValue{}
	_ Slice = SliceValue{}
	_ Timed = TimeValue{}
)

type (
	Value interface {
		// Is this absence-like?  undefined, null and empty string.
		Nil() bool
		// Value is the native go form.
		Value() interface{}
		// ToString text rendering, used for coercion and array comparison.
		ToString() string
		Kind() Kind
	}
	// Keyed values (objects, class instances) expose their top level keys.
	Keyed interface {
		Keys() []string
		Get(key string) (Value, bool)
		Len() int
	}
	// Slice sequences of values.
	Slice interface {
		SliceValue() []Value
		Len() int
	}
	// Timed date values.
	Timed interface {
		Time() time.Time
		Valid() bool
	}
)

type (
	UndefinedValue struct{}
	NullValue      struct{}
	StringValue    struct {
		v string
	}
	BoolValue struct {
		v bool
	}
	NumberValue struct {
		v float64
	}
	SliceValue struct {
		v []Value
	}
	TimeValue struct {
		v       time.Time
		invalid bool
		text    string
	}
	MapValue struct {
		v map[string]Value
	}
	// StructValue is an opaque value (a user defined type), it carries its
	// go type name which is used both to classify it and to compare classes.
	StructValue struct {
		v    interface{}
		name string
		kind Kind
	}
	FuncValue struct {
		v interface{}
	}
)

// Classify maps any go value to exactly one Kind.
func Classify(v interface{}) Kind {
	return NewValue(v).Kind()
}

// NewValue creates a new Value type from a native Go value.
//
// Compound values that are not sequences, maps or times are opaque
// StructValue's, classified by their type name.
func NewValue(goVal interface{}) Value {

	switch val := goVal.(type) {
	case nil:
		return NullValueVal
	case Value:
		return val
	case string:
		return NewStringValue(val)
	case []byte:
		return NewStringValue(string(val))
	case json.RawMessage:
		var decoded interface{}
		if err := json.Unmarshal(val, &decoded); err != nil {
			return NewStringValue(string(val))
		}
		return NewValue(decoded)
	case uuid.UUID:
		if val == nil {
			return NullValueVal
		}
		return NewStringValue(val.String())
	case bool:
		return NewBoolValue(val)
	case float64:
		return NewNumberValue(val)
	case float32:
		return NewNumberValue(float64(val))
	case int:
		return NewNumberValue(float64(val))
	case int64:
		return NewNumberValue(float64(val))
	case int32:
		return NewNumberValue(float64(val))
	case time.Time:
		return NewTimeValue(val)
	case *time.Time:
		if val == nil {
			return NullValueVal
		}
		return NewTimeValue(*val)
	case []interface{}:
		return NewSliceValuesNative(val)
	case []string:
		if val == nil {
			return NullValueVal
		}
		vs := make([]Value, len(val))
		for i, sv := range val {
			vs[i] = NewStringValue(sv)
		}
		return NewSliceValues(vs)
	case map[string]interface{}:
		if val == nil {
			return NullValueVal
		}
		return NewMapValue(val)
	}
	if pv, ok := protoValue(goVal); ok {
		return pv
	}
	return reflectValue(reflect.ValueOf(goVal))
}

func reflectValue(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Invalid:
		return NullValueVal
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return NullValueVal
		}
		if rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Struct {
			return newStructValue(rv.Interface(), rv.Elem().Type())
		}
		return NewValue(rv.Elem().Interface())
	case reflect.Bool:
		return NewBoolValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewNumberValue(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewNumberValue(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NewNumberValue(rv.Float())
	case reflect.String:
		return NewStringValue(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NullValueVal
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 && rv.Kind() == reflect.Slice {
			return NewStringValue(string(rv.Bytes()))
		}
		vs := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			vs[i] = NewValue(rv.Index(i).Interface())
		}
		return NewSliceValues(vs)
	case reflect.Map:
		if rv.IsNil() {
			return NullValueVal
		}
		mv := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			mv[fmt.Sprint(iter.Key().Interface())] = NewValue(iter.Value().Interface())
		}
		return MapValue{v: mv}
	case reflect.Func:
		if rv.IsNil() {
			return NullValueVal
		}
		return NewFuncValue(rv.Interface())
	}
	// struct, chan, complex, unsafe pointer
	return newStructValue(rv.Interface(), rv.Type())
}

func NewNullValue() NullValue {
	return NullValue{}
}

func (m UndefinedValue) Nil() bool          { return true }
func (m UndefinedValue) Kind() Kind         { return UndefinedKind }
func (m UndefinedValue) Value() interface{} { return Undefined }
func (m UndefinedValue) ToString() string   { return "undefined" }

func (m NullValue) Nil() bool                    { return true }
func (m NullValue) Kind() Kind                   { return NullKind }
func (m NullValue) Value() interface{}           { return nil }
func (m NullValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }
func (m NullValue) ToString() string             { return "null" }

func NewStringValue(v string) StringValue {
	return StringValue{v: v}
}

func (m StringValue) Nil() bool          { return len(m.v) == 0 }
func (m StringValue) Value() interface{} { return m.v }
func (m StringValue) Val() string        { return m.v }
func (m StringValue) ToString() string   { return m.v }
func (m StringValue) Kind() Kind {
	if len(m.v) == 0 {
		return EmptyStringKind
	}
	return StringKind
}

func NewBoolValue(v bool) BoolValue {
	if v {
		return BoolValueTrue
	}
	return BoolValueFalse
}

func (m BoolValue) Nil() bool          { return false }
func (m BoolValue) Kind() Kind         { return BoolKind }
func (m BoolValue) Value() interface{} { return m.v }
func (m BoolValue) Val() bool          { return m.v }
func (m BoolValue) ToString() string {
	if m.v {
		return "true"
	}
	return "false"
}

func NewNumberValue(v float64) NumberValue {
	return NumberValue{v: v}
}

func (m NumberValue) Nil() bool          { return false }
func (m NumberValue) Kind() Kind         { return NumberKind }
func (m NumberValue) Value() interface{} { return m.v }
func (m NumberValue) Val() float64       { return m.v }
func (m NumberValue) ToString() string   { return FormatNumber(m.v) }

func NewSliceValues(v []Value) SliceValue {
	return SliceValue{v: v}
}
func NewSliceValuesNative(iv []interface{}) SliceValue {
	vs := make([]Value, len(iv))
	for i, v := range iv {
		vs[i] = NewValue(v)
	}
	return SliceValue{v: vs}
}

func (m SliceValue) Nil() bool           { return false }
func (m SliceValue) Kind() Kind          { return ArrayKind }
func (m SliceValue) Val() []Value        { return m.v }
func (m SliceValue) SliceValue() []Value { return m.v }
func (m SliceValue) Len() int            { return len(m.v) }
func (m SliceValue) Value() interface{} {
	vals := make([]interface{}, len(m.v))
	for i, v := range m.v {
		vals[i] = v.Value()
	}
	return vals
}

// ToString joins the elements with a comma, undefined and null
// elements render as empty.
func (m SliceValue) ToString() string {
	sv := make([]string, len(m.v))
	for i, val := range m.v {
		switch val.Kind() {
		case UndefinedKind, NullKind:
		default:
			sv[i] = val.ToString()
		}
	}
	return strings.Join(sv, ",")
}

func NewTimeValue(v time.Time) TimeValue {
	return TimeValue{v: v}
}

// InvalidTime is the sentinel for a date that could not be parsed, it is
// still a date kind but is never equal to anything.
func InvalidTime(text string) TimeValue {
	return TimeValue{invalid: true, text: text}
}

func (m TimeValue) Nil() bool       { return false }
func (m TimeValue) Kind() Kind      { return DateKind }
func (m TimeValue) Val() time.Time  { return m.v }
func (m TimeValue) Time() time.Time { return m.v }
func (m TimeValue) Valid() bool     { return !m.invalid }

// Text the original text an invalid time was parsed from
func (m TimeValue) Text() string { return m.text }

// Int epoch milliseconds
func (m TimeValue) Int() int64 { return EpochMillis(m.v) }

// EpochMillis milliseconds since the unix epoch, truncated.  Valid for the
// whole time.Time range, unlike UnixNano.
func EpochMillis(t time.Time) int64 {
	return t.Unix()*1000 + int64(t.Nanosecond()/1e6)
}
func (m TimeValue) Value() interface{} {
	if m.invalid {
		return m
	}
	return m.v
}
func (m TimeValue) ToString() string {
	if m.invalid {
		return "Invalid Date"
	}
	return timeutil.Strftime(&m.v, "%a %b %d %Y %H:%M:%S") + " GMT" + m.v.Format("-0700")
}

func NewMapValue(v map[string]interface{}) MapValue {
	mv := make(map[string]Value, len(v))
	for n, val := range v {
		mv[n] = NewValue(val)
	}
	return MapValue{v: mv}
}

func (m MapValue) Nil() bool             { return false }
func (m MapValue) Kind() Kind            { return ObjectKind }
func (m MapValue) Val() map[string]Value { return m.v }
func (m MapValue) Len() int              { return len(m.v) }
func (m MapValue) Value() interface{} {
	mv := make(map[string]interface{}, len(m.v))
	for n, v := range m.v {
		mv[n] = v.Value()
	}
	return mv
}
func (m MapValue) ToString() string { return jsonString(m) }
func (m MapValue) Keys() []string {
	keys := make([]string, 0, len(m.v))
	for k := range m.v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
func (m MapValue) Get(key string) (Value, bool) {
	v, ok := m.v[key]
	return v, ok
}

func newStructValue(v interface{}, rt reflect.Type) StructValue {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	sv := StructValue{v: v, name: rt.Name(), kind: ClassKind}
	// a type named like one of the built in kinds (Array, Date, Object...)
	// is classified as that kind, not as a class.
	if k, ok := kindsByName[strings.ToLower(sv.name)]; ok {
		sv.kind = k
	}
	return sv
}

// NewStructValue wraps an opaque go value.
func NewStructValue(v interface{}) StructValue {
	if v == nil {
		return StructValue{name: "", kind: ClassKind}
	}
	return newStructValue(v, reflect.TypeOf(v))
}

func (m StructValue) Nil() bool          { return false }
func (m StructValue) Kind() Kind         { return m.kind }
func (m StructValue) Value() interface{} { return m.v }
func (m StructValue) Val() interface{}   { return m.v }

// TypeName the go type name, pointers dereferenced, no package path.
func (m StructValue) TypeName() string { return m.name }
func (m StructValue) ToString() string {
	by, err := json.Marshal(m.v)
	if err != nil {
		return fmt.Sprintf("%v", m.v)
	}
	return string(by)
}
func (m StructValue) Len() int { return len(m.Keys()) }

// Keys exported struct fields in declaration order, named by their
// json tag when present.  Non struct values have no keys.
func (m StructValue) Keys() []string {
	fields := structFields(m.v)
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.name
	}
	return keys
}
func (m StructValue) Get(key string) (Value, bool) {
	for _, f := range structFields(m.v) {
		if f.name == key {
			return NewValue(f.rv.Interface()), true
		}
	}
	return nil, false
}

type structField struct {
	name string
	rv   reflect.Value
}

func structFields(v interface{}) []structField {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()
	fields := make([]structField, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name := sf.Name
		if tag := sf.Tag.Get("json"); tag != "" {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields = append(fields, structField{name: name, rv: rv.Field(i)})
	}
	return fields
}

func NewFuncValue(v interface{}) FuncValue {
	return FuncValue{v: v}
}

func (m FuncValue) Nil() bool          { return false }
func (m FuncValue) Kind() Kind         { return FuncKind }
func (m FuncValue) Value() interface{} { return m.v }

// Pointer the code pointer, two funcs are the same function if equal.
func (m FuncValue) Pointer() uintptr { return reflect.ValueOf(m.v).Pointer() }
func (m FuncValue) ToString() string {
	if f := runtime.FuncForPC(m.Pointer()); f != nil {
		return "func " + f.Name()
	}
	return "func"
}
