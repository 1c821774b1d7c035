package coerce_test

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"

	"github.com/araddon/propeq/coerce"
	"github.com/araddon/propeq/compare"
	"github.com/araddon/propeq/testutil"
	"github.com/araddon/propeq/value"
)

func TestMain(m *testing.M) {
	testutil.Setup() // will call flag.Parse()

	// Now run the actual Tests
	os.Exit(m.Run())
}

type coerceTest struct {
	in     interface{}
	target value.Kind
	out    interface{}
}

var coerceTests = []coerceTest{
	{"1.1", value.NumberKind, 1.1},
	{" 42 ", value.NumberKind, float64(42)},
	{"0x1f", value.NumberKind, float64(31)},
	{"not a number", value.NumberKind, "not a number"},
	{true, value.NumberKind, true},
	{`["a","b"]`, value.ArrayKind, []interface{}{"a", "b"}},
	{`{"name":"a","n":1}`, value.ObjectKind, map[string]interface{}{"name": "a", "n": float64(1)}},
	{"true", value.BoolKind, true},
	{"false", value.BoolKind, false},
	{"2016-01-01T00:00:00Z", value.DateKind, time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)},
	{"2016-01-01", value.DateKind, time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)},
	{"not a date", value.DateKind, value.InvalidTime("not a date")},
	{"1500000000000", value.DateKind, value.InvalidTime("1500000000000")},
	{1.5e12, value.DateKind, value.InvalidTime("1500000000000")},
	{" 1500000000.5 ", value.DateKind, value.InvalidTime(" 1500000000.5 ")},
	{"abc", value.StringKind, "abc"},
	{12.5, value.StringKind, 12.5},
	{"abc", value.FuncKind, "abc"},
	{nil, value.NumberKind, nil},
	{value.Undefined, value.ArrayKind, value.Undefined},
	{float64(3), value.NumberKind, float64(3)},
	{[]interface{}{"a"}, value.ArrayKind, []interface{}{"a"}},
}

func TestToKind(t *testing.T) {
	for _, tc := range coerceTests {
		out, err := coerce.ToKind(tc.in, tc.target)
		assert.NoError(t, err, "coercing %#v to %s", tc.in, tc.target)
		assert.Equal(t, tc.out, out, "coercing %#v to %s", tc.in, tc.target)
	}
}

func TestToKindEmptyString(t *testing.T) {
	// the empty string is its own kind, so it is coerced like any other text
	out, err := coerce.ToKind("", value.NumberKind)
	assert.NoError(t, err)
	assert.Equal(t, float64(0), out)
}

func TestToKindParseError(t *testing.T) {
	for _, target := range []value.Kind{value.ObjectKind, value.ArrayKind, value.BoolKind} {
		out, err := coerce.ToKind("not json", target)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, coerce.ErrParse), "got %v", err)
		var pe *coerce.ParseError
		if assert.True(t, errors.As(err, &pe)) {
			assert.Equal(t, target, pe.Kind)
			assert.Equal(t, "not json", pe.Text)
			var se *json.SyntaxError
			assert.True(t, errors.As(err, &se), "wraps the decode error")
		}
		assert.Equal(t, "not json", out)
	}
}

func TestToKindDateMath(t *testing.T) {
	before := time.Now().Add(-4 * 24 * time.Hour).Add(-time.Minute)
	out, err := coerce.ToKind("now-4d", value.DateKind)
	assert.NoError(t, err)
	ts, ok := out.(time.Time)
	if assert.True(t, ok, "got %T", out) {
		assert.True(t, ts.After(before), "got %v", ts)
		assert.True(t, ts.Before(time.Now().Add(-3*24*time.Hour)), "got %v", ts)
	}

	out, err = coerce.ToKind("now", value.DateKind)
	assert.NoError(t, err)
	_, ok = out.(time.Time)
	assert.True(t, ok, "got %T", out)
}

func TestToKindInvalidDate(t *testing.T) {
	out, err := coerce.ToKind("sometime after lunch", value.DateKind)
	assert.NoError(t, err)
	assert.Equal(t, value.DateKind, value.Classify(out))
	tv, ok := out.(value.TimeValue)
	if assert.True(t, ok, "got %T", out) {
		assert.False(t, tv.Valid())
		assert.Equal(t, "sometime after lunch", tv.Text())
	}
	// invalid dates are never equal, not even to themselves
	assert.False(t, compare.Equal(out, out))
}

func TestRecord(t *testing.T) {
	rec := map[string]interface{}{
		"age":     "21",
		"score":   7.5,
		"tags":    `["x","y"]`,
		"created": "2016-01-01T00:00:00Z",
		"name":    "12",
		"flag":    "true",
		"missing": nil,
	}
	kinds := map[string]value.Kind{
		"age":     value.NumberKind,
		"score":   value.NumberKind,
		"tags":    value.ArrayKind,
		"created": value.DateKind,
		"flag":    value.BoolKind,
		"missing": value.NumberKind,
		"absent":  value.NumberKind,
	}
	out, err := coerce.Record(rec, kinds)
	assert.NoError(t, err)
	assert.Equal(t, float64(21), out["age"])
	assert.Equal(t, 7.5, out["score"])
	assert.Equal(t, []interface{}{"x", "y"}, out["tags"])
	assert.Equal(t, time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), out["created"])
	assert.Equal(t, true, out["flag"])
	assert.Equal(t, "12", out["name"], "undeclared keys untouched")
	assert.Nil(t, out["missing"])
	_, ok := out["absent"]
	assert.False(t, ok, "declared but absent keys are not added")
	assert.Equal(t, 7, len(out))

	// in place
	assert.Equal(t, float64(21), rec["age"])
}

func TestRecordIdempotent(t *testing.T) {
	kinds := map[string]value.Kind{
		"n":    value.NumberKind,
		"bad":  value.NumberKind,
		"obj":  value.ObjectKind,
		"when": value.DateKind,
		"oops": value.DateKind,
	}
	rec := map[string]interface{}{
		"n":    "3",
		"bad":  "three",
		"obj":  `{"a":[1,2]}`,
		"when": "now-1h",
		"oops": "someday",
	}
	once, err := coerce.Record(rec, kinds)
	assert.NoError(t, err)
	snapshot := make(map[string]interface{}, len(once))
	for k, v := range once {
		snapshot[k] = v
	}
	twice, err := coerce.Record(once, kinds)
	assert.NoError(t, err)
	assert.Equal(t, snapshot, twice)
}

func TestRecordParseError(t *testing.T) {
	rec := map[string]interface{}{
		"a": "1",
		"b": "not json",
		"c": "2",
	}
	kinds := map[string]value.Kind{
		"a": value.NumberKind,
		"b": value.ObjectKind,
		"c": value.NumberKind,
	}
	_, err := coerce.Record(rec, kinds)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, coerce.ErrParse), "got %v", err)
	assert.Contains(t, err.Error(), "b:")
	assert.Equal(t, float64(1), rec["a"], "keys before the failure stay coerced")
	assert.Equal(t, "2", rec["c"], "keys after the failure are not visited")
}

func TestRecordJsonHelper(t *testing.T) {
	var jh u.JsonHelper
	err := json.Unmarshal([]byte(`{"id":"7","ids":"[1,2]","nested":{"x":1}}`), &jh)
	assert.NoError(t, err)
	out, err := coerce.Record(jh, map[string]value.Kind{
		"id":     value.NumberKind,
		"ids":    value.ArrayKind,
		"nested": value.ObjectKind,
	})
	assert.NoError(t, err)
	assert.Equal(t, float64(7), out["id"])
	assert.Equal(t, []interface{}{float64(1), float64(2)}, out["ids"])
	assert.Equal(t, map[string]interface{}{"x": float64(1)}, out["nested"])
}
