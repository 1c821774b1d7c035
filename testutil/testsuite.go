package testutil

import (
	"github.com/stretchr/testify/assert"
)

type (
	// TestingT is the subset of *testing.T the suites need.
	TestingT interface {
		Errorf(format string, args ...interface{})
	}

	// PairSpec a pair of values and the expected result of comparing them.
	PairSpec struct {
		Name   string
		A, B   interface{}
		Expect bool
	}

	// PairFunc anything that compares two values.
	PairFunc func(a, b interface{}) bool
)

// RunPairSpecs run each spec through fn.
func RunPairSpecs(t TestingT, fn PairFunc, specs []PairSpec) {
	for _, spec := range specs {
		assert.Equalf(t, spec.Expect, fn(spec.A, spec.B), "comparing %q: %#v and %#v", spec.Name, spec.A, spec.B)
	}
}

// RunSymmetricSpecs run each spec through fn in both argument orders.
func RunSymmetricSpecs(t TestingT, fn PairFunc, specs []PairSpec) {
	RunPairSpecs(t, fn, specs)
	swapped := make([]PairSpec, len(specs))
	for i, spec := range specs {
		swapped[i] = PairSpec{Name: spec.Name + " (swapped)", A: spec.B, B: spec.A, Expect: spec.Expect}
	}
	RunPairSpecs(t, fn, swapped)
}
