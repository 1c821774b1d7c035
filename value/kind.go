package value

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when asking for the name of an ordinal
	// that is not in the Kind registry.
	ErrOutOfRange = errors.New("kind ordinal out of range")
)

// Kind is the coarse semantic classification of a runtime value.
type Kind uint8

const (
	// Enum values for the Kind registry, DO NOT CHANGE the numbers, do not use iota
	UndefinedKind   Kind = 1
	NullKind        Kind = 2
	EmptyStringKind Kind = 3
	BoolKind        Kind = 4
	StringKind      Kind = 5
	NumberKind      Kind = 6
	ArrayKind       Kind = 7
	DateKind        Kind = 8
	ObjectKind      Kind = 9
	ClassKind       Kind = 10
	FuncKind        Kind = 11
)

var (
	kindNames = [...]string{
		UndefinedKind:   "undefined",
		NullKind:        "null",
		EmptyStringKind: "emptyString",
		BoolKind:        "boolean",
		StringKind:      "string",
		NumberKind:      "number",
		ArrayKind:       "array",
		DateKind:        "date",
		ObjectKind:      "object",
		ClassKind:       "class",
		FuncKind:        "function",
	}
	kindsByName = make(map[string]Kind, len(kindNames))
)

func init() {
	for i, name := range kindNames {
		if name != "" {
			kindsByName[name] = Kind(i)
		}
	}
}

func (m Kind) String() string {
	if !m.Valid() {
		return "invalid"
	}
	return kindNames[m]
}

// Valid is this a registered ordinal
func (m Kind) Valid() bool {
	return m >= UndefinedKind && m <= FuncKind
}

// IsAbsent undefined, null and empty string are interchangeable
// for equality.
func (m Kind) IsAbsent() bool {
	switch m {
	case UndefinedKind, NullKind, EmptyStringKind:
		return true
	}
	return false
}

// Kinds returns the registry in ordinal order.  The slice is a copy.
func Kinds() []Kind {
	kinds := make([]Kind, 0, FuncKind)
	for k := UndefinedKind; k <= FuncKind; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindName returns the registry name for a kind ordinal.
func KindName(k Kind) (string, error) {
	if !k.Valid() {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, uint8(k))
	}
	return kindNames[k], nil
}

// KindFromString Given a registry name, find the kind.  Names are
// exact (emptyString, not emptystring).
func KindFromString(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// KindNameOf classify a value and return the name of its kind.
func KindNameOf(v interface{}) string {
	// Classify is total over the registry so this can't fail
	name, _ := KindName(Classify(v))
	return name
}
