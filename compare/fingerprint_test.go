package compare_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/araddon/propeq/compare"
	"github.com/araddon/propeq/testutil"
	"github.com/araddon/propeq/value"
)

var fingerprintSpecs = []testutil.PairSpec{
	{Name: "absent", A: nil, B: "", Expect: true},
	{Name: "undefined", A: value.Undefined, B: nil, Expect: true},
	{Name: "numbers", A: 1, B: 1.0, Expect: true},
	{Name: "number vs string", A: 1, B: "1", Expect: false},
	{Name: "strings", A: "a", B: "b", Expect: false},
	{Name: "arrays", A: []interface{}{2, 1}, B: []int{1, 2}, Expect: true},
	{Name: "dates", A: time.Unix(10, 0), B: time.Unix(10, 500), Expect: true},
	{Name: "dates differ", A: time.Unix(10, 0), B: time.Unix(11, 0), Expect: false},
	{Name: "absent keys", A: map[string]interface{}{"a": 1}, B: map[string]interface{}{"a": 1, "b": nil, "c": ""}, Expect: true},
	{Name: "extra key", A: map[string]interface{}{"a": 1}, B: map[string]interface{}{"a": 1, "b": 2}, Expect: false},
	{Name: "nested", A: map[string]interface{}{"a": map[string]interface{}{"b": 1, "c": nil}},
		B: map[string]interface{}{"a": map[string]interface{}{"b": 1}}, Expect: true},
	{Name: "classes", A: Custom{Name: "x"}, B: &Custom{Name: "x"}, Expect: true},
	{Name: "class vs object", A: Custom{Name: "x"}, B: map[string]interface{}{"Name": "x"}, Expect: false},
	{Name: "classes differ", A: B1{}, B: B2{}, Expect: false},
	{Name: "struct named object", A: Object{Name: "x"}, B: map[string]interface{}{"name": "x"}, Expect: true},
	{Name: "struct named object differs", A: Object{Name: "x"}, B: map[string]interface{}{"name": "y"}, Expect: false},
}

func TestFingerprint(t *testing.T) {
	testutil.RunSymmetricSpecs(t, func(a, b interface{}) bool {
		return compare.Fingerprint(a) == compare.Fingerprint(b)
	}, fingerprintSpecs)

	// equal values always share a fingerprint
	for _, spec := range fingerprintSpecs {
		if compare.Equal(spec.A, spec.B) {
			assert.Equal(t, compare.Fingerprint(spec.A), compare.Fingerprint(spec.B), "for %q", spec.Name)
		}
	}

	// stable across calls
	v := map[string]interface{}{"k1": []interface{}{"a", 2}, "k2": time.Unix(0, 0)}
	assert.Equal(t, compare.Fingerprint(v), compare.Fingerprint(v))
}
