package coerce_test

import (
	"fmt"

	"github.com/araddon/propeq/coerce"
	"github.com/araddon/propeq/value"
)

func ExampleRecord() {
	rec := map[string]interface{}{"age": "21", "tags": `["a","b"]`, "name": "12"}
	coerce.Record(rec, map[string]value.Kind{
		"age":  value.NumberKind,
		"tags": value.ArrayKind,
	})
	fmt.Printf("%v %v %q\n", rec["age"], rec["tags"], rec["name"])
	// Output:
	// 21 [a b] "12"
}
