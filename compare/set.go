package compare

import (
	"github.com/google/btree"
)

// bucket holds every distinct value sharing one fingerprint.
type bucket struct {
	fp   uint64
	vals []interface{}
}

func (m *bucket) Less(than btree.Item) bool {
	return m.fp < than.(*bucket).fp
}

// Set of values distinct under Equal, indexed by Fingerprint in a btree.
//
// - values that are Equal to one already present are not added
// - NOT threadsafe
type Set struct {
	bt  *btree.BTree
	len int
}

func NewSet(vals ...interface{}) *Set {
	m := &Set{bt: btree.New(32)}
	for _, v := range vals {
		m.Add(v)
	}
	return m
}

// Add v unless an Equal value is already present, reports whether it was added.
func (m *Set) Add(v interface{}) bool {
	fp := Fingerprint(v)
	item := m.bt.Get(&bucket{fp: fp})
	if item == nil {
		m.bt.ReplaceOrInsert(&bucket{fp: fp, vals: []interface{}{v}})
		m.len++
		return true
	}
	b := item.(*bucket)
	if indexOf(b.vals, v) >= 0 {
		return false
	}
	b.vals = append(b.vals, v)
	m.len++
	return true
}

// Has is there a value Equal to v.
func (m *Set) Has(v interface{}) bool {
	item := m.bt.Get(&bucket{fp: Fingerprint(v)})
	return item != nil && indexOf(item.(*bucket).vals, v) >= 0
}

// Delete the value Equal to v, reports whether one was present.
func (m *Set) Delete(v interface{}) bool {
	key := &bucket{fp: Fingerprint(v)}
	item := m.bt.Get(key)
	if item == nil {
		return false
	}
	b := item.(*bucket)
	i := indexOf(b.vals, v)
	if i < 0 {
		return false
	}
	b.vals = append(b.vals[:i], b.vals[i+1:]...)
	if len(b.vals) == 0 {
		m.bt.Delete(key)
	}
	m.len--
	return true
}

func (m *Set) Len() int { return m.len }

// Values in fingerprint order, insertion order within a fingerprint.
func (m *Set) Values() []interface{} {
	out := make([]interface{}, 0, m.len)
	m.bt.Ascend(func(a btree.Item) bool {
		out = append(out, a.(*bucket).vals...)
		return true
	})
	return out
}

// Distinct drops every value Equal to an earlier one, keeping input order.
func Distinct(vals []interface{}) []interface{} {
	seen := NewSet()
	out := make([]interface{}, 0, len(vals))
	for _, v := range vals {
		if seen.Add(v) {
			out = append(out, v)
		}
	}
	return out
}

func indexOf(vals []interface{}, v interface{}) int {
	for i, have := range vals {
		if Equal(have, v) {
			return i
		}
	}
	return -1
}
