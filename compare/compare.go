// Package compare decides whether two loosely typed values are the same,
// by kind (optionally through equivalence classes of kinds) and by value.
//
// Equal is the main entry point:  undefined, null and empty string are
// interchangeable, otherwise kinds must match and values are compared
// per kind.  Objects are compared one level deep by key, each key going
// back through Equal.
package compare

import (
	"reflect"
	"sort"
	"strings"

	"github.com/araddon/propeq/value"
)

type (
	// ClassComparator compares two class (user type) values, replacing the
	// default type name and key comparison.
	ClassComparator func(a, b value.Value) bool

	// Options per call comparison options, nil is fine.
	Options struct {
		ClassComparator ClassComparator
	}
)

// Equal are these two values equal.
func Equal(a, b interface{}) bool {
	va, vb := value.NewValue(a), value.NewValue(b)
	ka, kb := va.Kind(), vb.Kind()
	if ka.IsAbsent() && kb.IsAbsent() {
		return true
	}
	if ka != kb {
		return false
	}
	return SameValue(va, vb, nil)
}

// SameValue compare two values assumed to be of the same (or equivalent)
// kind, dispatching on the kind of a.
//
//   string, number, boolean, function  =>  strict equality
//   array                              =>  sorted text of elements
//   date                               =>  epoch milliseconds
//   object                             =>  SameKeys
//   class                              =>  ClassComparator, or type name + SameKeys
func SameValue(a, b interface{}, opts *Options) bool {
	va, vb := value.NewValue(a), value.NewValue(b)
	ka, kb := va.Kind(), vb.Kind()

	switch ka {
	case value.StringKind, value.NumberKind, value.BoolKind, value.FuncKind:
		return identical(va, vb)
	case value.ArrayKind:
		return sortedText(va) == sortedText(vb)
	case value.DateKind:
		return sameTime(va, vb)
	case value.ObjectKind:
		return sameKeys(va, vb, largerKeys(va, vb))
	case value.ClassKind:
		if opts != nil && opts.ClassComparator != nil {
			return opts.ClassComparator(va, vb)
		}
		if typeName(va) != typeName(vb) {
			return false
		}
		return sameKeys(va, vb, largerKeys(va, vb))
	}
	return ka == kb
}

// SameKeys shallow key comparison.  With no relevant keys the keys of
// whichever value has more keys are used (b on a tie), not the union.
// Each key must be Equal, missing keys are undefined.
func SameKeys(a, b interface{}, relevantKeys ...string) bool {
	va, vb := value.NewValue(a), value.NewValue(b)
	if len(relevantKeys) == 0 {
		relevantKeys = largerKeys(va, vb)
	}
	return sameKeys(va, vb, relevantKeys)
}

func sameKeys(va, vb value.Value, keys []string) bool {
	for _, key := range keys {
		if !Equal(lookup(va, key), lookup(vb, key)) {
			return false
		}
	}
	return true
}

func keysOf(v value.Value) []string {
	if kv, ok := v.(value.Keyed); ok {
		return kv.Keys()
	}
	return nil
}

func largerKeys(va, vb value.Value) []string {
	keysA, keysB := keysOf(va), keysOf(vb)
	if len(keysA) > len(keysB) {
		return keysA
	}
	return keysB
}

func lookup(v value.Value, key string) value.Value {
	if kv, ok := v.(value.Keyed); ok {
		if val, ok := kv.Get(key); ok {
			return val
		}
	}
	return value.Undefined
}

func identical(va, vb value.Value) bool {
	switch at := va.(type) {
	case value.StringValue:
		bt, ok := vb.(value.StringValue)
		return ok && at.Val() == bt.Val()
	case value.NumberValue:
		bt, ok := vb.(value.NumberValue)
		return ok && at.Val() == bt.Val()
	case value.BoolValue:
		bt, ok := vb.(value.BoolValue)
		return ok && at.Val() == bt.Val()
	case value.FuncValue:
		bt, ok := vb.(value.FuncValue)
		return ok && at.Pointer() == bt.Pointer()
	case value.StructValue:
		bt, ok := vb.(value.StructValue)
		return ok && sameInstance(at.Value(), bt.Value())
	}
	return false
}

// sameInstance reference types are the same if they point to the same
// thing, plain go values if they are deeply equal.
func sameInstance(x, y interface{}) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	rx, ry := reflect.ValueOf(x), reflect.ValueOf(y)
	if rx.Type() != ry.Type() {
		return false
	}
	switch rx.Kind() {
	case reflect.Ptr, reflect.Chan, reflect.Map, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		return rx.Pointer() == ry.Pointer()
	}
	return reflect.DeepEqual(x, y)
}

func sameTime(va, vb value.Value) bool {
	at, aok := va.(value.Timed)
	bt, bok := vb.(value.Timed)
	switch {
	case aok && bok:
		if !at.Valid() || !bt.Valid() {
			return false
		}
		return value.EpochMillis(at.Time()) == value.EpochMillis(bt.Time())
	case !aok && !bok:
		return identical(va, vb)
	}
	return false
}

// sortedText sorts the elements of a sequence by their text (undefined
// elements last) and joins them with a comma.
func sortedText(v value.Value) string {
	sl, ok := v.(value.Slice)
	if !ok {
		return v.ToString()
	}
	type elem struct {
		key       string
		text      string
		undefined bool
	}
	elems := make([]elem, 0, sl.Len())
	for _, ev := range sl.SliceValue() {
		e := elem{key: ev.ToString()}
		switch ev.Kind() {
		case value.UndefinedKind:
			e.undefined = true
		case value.NullKind:
		default:
			e.text = e.key
		}
		elems = append(elems, e)
	}
	sort.SliceStable(elems, func(i, j int) bool {
		if elems[i].undefined != elems[j].undefined {
			return !elems[i].undefined
		}
		return elems[i].key < elems[j].key
	})
	texts := make([]string, len(elems))
	for i, e := range elems {
		texts[i] = e.text
	}
	return strings.Join(texts, ",")
}
