package compare

import (
	u "github.com/araddon/gou"
	"github.com/jmespath/go-jmespath"
	"github.com/mb0/glob"

	"github.com/araddon/propeq/value"
)

var _ = u.EMPTY

// SameKeysMatching is SameKeys restricted to the keys (of the larger key
// set) that match any of the glob patterns.
//
//    SameKeysMatching(a, b, "addr_*", "name")
func SameKeysMatching(a, b interface{}, patterns ...string) bool {
	va, vb := value.NewValue(a), value.NewValue(b)
	var keys []string
	for _, key := range largerKeys(va, vb) {
		if matchesAny(key, patterns) {
			keys = append(keys, key)
		}
	}
	return sameKeys(va, vb, keys)
}

func matchesAny(key string, patterns []string) bool {
	for _, pattern := range patterns {
		match, err := glob.Match(pattern, key)
		if err != nil {
			u.Warnf("invalid key pattern %q: %v", pattern, err)
			continue
		}
		if match {
			return true
		}
	}
	return false
}

// SameAt evaluates each jmespath expression against both values and
// requires the results to be Equal.
//
//    SameAt(a, b, "user.name", "tags[0]")
func SameAt(a, b interface{}, expressions ...string) (bool, error) {
	pa := value.ToPlain(value.NewValue(a))
	pb := value.ToPlain(value.NewValue(b))
	for _, expression := range expressions {
		jp, err := jmespath.Compile(expression)
		if err != nil {
			return false, err
		}
		ra, err := jp.Search(pa)
		if err != nil {
			return false, err
		}
		rb, err := jp.Search(pb)
		if err != nil {
			return false, err
		}
		if !Equal(ra, rb) {
			return false, nil
		}
	}
	return true, nil
}
