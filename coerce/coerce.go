// Package coerce converts stringly-typed values, such as fields decoded
// from a wire format, into the kinds a schema declares for them.
package coerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	u "github.com/araddon/gou"
	"github.com/araddon/dateparse"
	"github.com/lytics/datemath"

	"github.com/araddon/propeq/compare"
	"github.com/araddon/propeq/value"
)

var _ = u.EMPTY

// epochLike bare numbers longer than a year, dateparse would read them as
// epoch timestamps, but numeric text is not a date.
var epochLike = regexp.MustCompile(`^\d{5,}(\.\d+)?$`)

// ErrParse is the sentinel every ParseError matches.
var ErrParse = errors.New("coerce: malformed literal")

// ParseError text that claims to be a structured literal (object, array,
// boolean) but does not decode.
type ParseError struct {
	Kind value.Kind
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("coerce: cannot parse %q as %s: %v", e.Text, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) hold.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ToKind coerce v to the target kind.
//
//   ToKind("1.1", value.NumberKind)          =>  1.1
//   ToKind("abc", value.NumberKind)          =>  "abc"  (unchanged)
//   ToKind(`["a","b"]`, value.ArrayKind)     =>  []interface{}{"a", "b"}
//   ToKind("now-4d", value.DateKind)         =>  time.Time
//   ToKind("not a date", value.DateKind)     =>  value.InvalidTime("not a date")
//   ToKind("not json", value.ObjectKind)     =>  *ParseError
//
// Values already of the target kind, and undefined or null values, are
// returned unchanged.
func ToKind(v interface{}, target value.Kind) (interface{}, error) {
	out, _, err := toKind(v, target)
	return out, err
}

// toKind reports changed=true only when a new value was produced.
func toKind(v interface{}, target value.Kind) (interface{}, bool, error) {
	if !compare.KindMatches(target, value.NumberKind, nil) {
		return v, false, nil
	}
	vv := value.NewValue(v)
	switch vv.Kind() {
	case target, value.UndefinedKind, value.NullKind:
		return v, false, nil
	}
	text := vv.ToString()

	switch target {
	case value.NumberKind:
		f, ok := value.ParseNumber(text)
		if !ok {
			u.Debugf("could not coerce %q to number", text)
			return v, false, nil
		}
		return f, true, nil
	case value.ObjectKind, value.ArrayKind, value.BoolKind:
		var out interface{}
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			return v, false, &ParseError{Kind: target, Text: text, Err: err}
		}
		return out, true, nil
	case value.DateKind:
		return parseDate(text), true, nil
	}
	return v, false, nil
}

// parseDate never fails, unparseable text becomes the invalid date sentinel.
func parseDate(text string) interface{} {
	dateStr := strings.TrimSpace(text)
	if len(dateStr) >= 3 && strings.ToLower(dateStr[:3]) == "now" {
		// Is date math
		if len(dateStr) == 3 {
			return time.Now().UTC()
		}
		if t, err := datemath.Eval(dateStr[3:]); err == nil {
			return t
		}
	} else if !epochLike.MatchString(dateStr) {
		if t, err := dateparse.ParseIn(dateStr, time.UTC); err == nil {
			return t
		}
	}
	u.Debugf("could not coerce %q to date", text)
	return value.InvalidTime(text)
}

// Record coerce each field of rec that kinds declares a kind for. rec is
// modified in place and returned; undeclared fields are left untouched.
//
// Fields are visited in sorted key order, the first ParseError aborts and
// is returned wrapped with its field name. Fields visited before it stay
// coerced.
func Record(rec map[string]interface{}, kinds map[string]value.Kind) (map[string]interface{}, error) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if _, ok := kinds[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out, changed, err := toKind(rec[k], kinds[k])
		if err != nil {
			return rec, fmt.Errorf("%s: %w", k, err)
		}
		if changed {
			rec[k] = out
		}
	}
	return rec, nil
}
