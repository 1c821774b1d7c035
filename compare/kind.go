package compare

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/araddon/propeq/value"
)

var (
	// ErrEquivalenceMap an equivalence map config string could not be parsed.
	ErrEquivalenceMap = errors.New("invalid equivalence map")
)

type (
	// EquivalenceClass a labeled group of kinds that are considered the same.
	EquivalenceClass struct {
		Label string
		Kinds []value.Kind
	}
	// EquivalenceMap is an ordered list of classes, only used for the
	// duration of a single comparison.  A kind should appear in at most one
	// class, if it does appear more than once the lookup goes by class order.
	EquivalenceMap []EquivalenceClass
)

// NewEquivalenceMap from a label => kinds map, classes are ordered by label.
func NewEquivalenceMap(classes map[string][]value.Kind) EquivalenceMap {
	labels := make([]string, 0, len(classes))
	for label := range classes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	m := make(EquivalenceMap, 0, len(labels))
	for _, label := range labels {
		m = append(m, EquivalenceClass{Label: label, Kinds: classes[label]})
	}
	return m
}

// ParseEquivalenceMap parse the config form of an equivalence map,
// classes separated by ; in order of appearance.
//
//    nil=undefined,null,emptyString;num=number,string
func ParseEquivalenceMap(s string) (EquivalenceMap, error) {
	var m EquivalenceMap
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			return nil, fmt.Errorf("%w: expected label=kind,... got %q", ErrEquivalenceMap, part)
		}
		class := EquivalenceClass{Label: strings.TrimSpace(kv[0])}
		for _, name := range strings.Split(kv[1], ",") {
			name = strings.TrimSpace(name)
			k, ok := value.KindFromString(name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown kind %q in class %q", ErrEquivalenceMap, name, class.Label)
			}
			class.Kinds = append(class.Kinds, k)
		}
		m = append(m, class)
	}
	return m, nil
}

// String the config form, see ParseEquivalenceMap
func (m EquivalenceMap) String() string {
	parts := make([]string, len(m))
	for i, class := range m {
		names := make([]string, len(class.Kinds))
		for j, k := range class.Kinds {
			names[j] = k.String()
		}
		parts[i] = class.Label + "=" + strings.Join(names, ",")
	}
	return strings.Join(parts, ";")
}

func (c EquivalenceClass) has(k value.Kind) bool {
	for _, ck := range c.Kinds {
		if ck == k {
			return true
		}
	}
	return false
}

// SameKind are two kinds the same, either equal or in the same equivalence
// class of m.
func SameKind(a, b value.Kind, m EquivalenceMap) bool {
	if a == b {
		return true
	}
	if len(m) == 0 {
		return false
	}
	labelA, labelB := "", ""
	foundA, foundB := false, false
	for _, class := range m {
		if class.has(a) {
			labelA, foundA = class.Label, true
		}
		if class.has(b) {
			labelB, foundB = class.Label, true
		}
		if foundA && foundB {
			return labelA == labelB
		}
	}
	return false
}

// SameKindOf classify two values and compare their kinds.  Two class
// values are only the same kind if their type names match.
func SameKindOf(a, b interface{}, m EquivalenceMap) bool {
	va, vb := value.NewValue(a), value.NewValue(b)
	ka, kb := va.Kind(), vb.Kind()
	if ka == kb && ka == value.ClassKind {
		return typeName(va) == typeName(vb)
	}
	return SameKind(ka, kb, m)
}

// KindMatches does the kind of v match k.
func KindMatches(v interface{}, k value.Kind, m EquivalenceMap) bool {
	return SameKind(value.Classify(v), k, m)
}

func typeName(v value.Value) string {
	if sv, ok := v.(value.StructValue); ok {
		return sv.TypeName()
	}
	return ""
}
