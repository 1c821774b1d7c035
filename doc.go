// Propeq classifies loosely typed values (decoded json, protobuf
// payloads, native go values) into a small set of semantic kinds, and
// compares and coerces them.
//
// Packages
//
//   value    kinds, classification and the Value wrappers
//   compare  kind equivalence, value equality, fingerprints
//   coerce   convert stringly typed fields to declared kinds
//
// The facade is compare.Equal, where undefined, null and empty string are
// all the same thing:
//
//   compare.Equal(nil, "")                                   // true
//   compare.Equal([]interface{}{1, 2}, []interface{}{2, 1})  // true
//
package propeq
