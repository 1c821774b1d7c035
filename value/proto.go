package value

import (
	gogotypes "github.com/gogo/protobuf/types"
	"github.com/golang/protobuf/ptypes"
	tspb "github.com/golang/protobuf/ptypes/timestamp"
)

// protoValue normalizes the protobuf well known types that show up in
// decoded api payloads (timestamps, and the struct/list/value json-ish
// messages) into their semantic kinds instead of opaque classes.
func protoValue(v interface{}) (Value, bool) {
	switch pv := v.(type) {
	case *gogotypes.Timestamp:
		if pv == nil {
			return NullValueVal, true
		}
		t, err := gogotypes.TimestampFromProto(pv)
		if err != nil {
			return InvalidTime(pv.String()), true
		}
		return NewTimeValue(t), true
	case *tspb.Timestamp:
		if pv == nil {
			return NullValueVal, true
		}
		t, err := ptypes.Timestamp(pv)
		if err != nil {
			return InvalidTime(pv.String()), true
		}
		return NewTimeValue(t), true
	case *gogotypes.Struct:
		if pv == nil {
			return NullValueVal, true
		}
		mv := make(map[string]Value, len(pv.Fields))
		for k, fv := range pv.Fields {
			mv[k] = NewValue(fv)
		}
		return MapValue{v: mv}, true
	case *gogotypes.ListValue:
		if pv == nil {
			return NullValueVal, true
		}
		vs := make([]Value, len(pv.Values))
		for i, lv := range pv.Values {
			vs[i] = NewValue(lv)
		}
		return NewSliceValues(vs), true
	case *gogotypes.Value:
		if pv == nil {
			return NullValueVal, true
		}
		switch kv := pv.Kind.(type) {
		case *gogotypes.Value_NumberValue:
			return NewNumberValue(kv.NumberValue), true
		case *gogotypes.Value_StringValue:
			return NewStringValue(kv.StringValue), true
		case *gogotypes.Value_BoolValue:
			return NewBoolValue(kv.BoolValue), true
		case *gogotypes.Value_StructValue:
			return NewValue(kv.StructValue), true
		case *gogotypes.Value_ListValue:
			return NewValue(kv.ListValue), true
		}
		// Value_NullValue, or no kind set
		return NullValueVal, true
	}
	return nil, false
}
