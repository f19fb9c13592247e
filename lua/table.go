package lua

import (
	"fmt"
	"sort"
	"strings"
)

// Table is a Lua table: a hybrid array/hash aggregate with an optional
// per-instance metatable. The array part holds the dense 1..n integer
// key prefix; everything else — non-array-shaped integer keys, string
// keys, any other value used as a key — lives in the hash part.
type Table struct {
	array []Value
	hash  map[Value]Value

	metatable *Table
}

func (*Table) luaRef() {}

// TableValue wraps t as a Value.
func TableValue(t *Table) Value {
	return fromRef(KindTable, t)
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// normalizeKey collapses a Float key that is exactly representable as
// an Int to its Int form, so that t[3] and t[3.0] address the same
// slot the way Lua's table keys require. Keys are otherwise used as-is.
func normalizeKey(k Value) Value {
	if k.kind == KindFloat {
		if i := int32(k.f); float64(i) == k.f {
			return Int(i)
		}
	}
	return k
}

// arrayIndex reports whether k (already normalized) addresses the array
// part, returning its 0-based slot.
func arrayIndex(k Value) (int, bool) {
	if k.kind != KindInt || k.i < 1 {
		return 0, false
	}
	return int(k.i) - 1, true
}

// RawGet reads a value without consulting any metamethod.
func (t *Table) RawGet(k Value) Value {
	k = normalizeKey(k)
	if i, ok := arrayIndex(k); ok && i < len(t.array) {
		return t.array[i]
	}
	if t.hash == nil {
		return Nil
	}
	if v, ok := t.hash[k]; ok {
		return v
	}
	return Nil
}

// RawSet writes a value without consulting any metamethod. Setting nil
// removes the key.
func (t *Table) RawSet(k, v Value) error {
	if k.IsNil() {
		return fmt.Errorf("table index is nil")
	}
	if k.kind == KindFloat && k.f != k.f { // NaN
		return fmt.Errorf("table index is NaN")
	}
	t.forceSet(normalizeKey(k), v)
	return nil
}

func (t *Table) forceSet(k, v Value) {
	if i, ok := arrayIndex(k); ok {
		t.setArray(i, v)
		return
	}
	t.setHash(k, v)
}

func (t *Table) setHash(k, v Value) {
	if v.IsNil() {
		if t.hash != nil {
			delete(t.hash, k)
		}
		return
	}
	if t.hash == nil {
		t.hash = make(map[Value]Value)
	}
	t.hash[k] = v
}

// setArray places v at 0-based array slot i, growing the array part
// when i is exactly one past its current end and migrating any
// contiguous hash-part successors into the array, or shrinking it (and
// spilling the remainder into the hash part) when an interior value is
// cleared to nil.
func (t *Table) setArray(i int, v Value) {
	switch {
	case i < len(t.array):
		if !v.IsNil() {
			t.array[i] = v
			return
		}
		tail := t.array[i+1:]
		t.array = t.array[:i]
		for j, tv := range tail {
			t.setHash(Int(int32(i+j+2)), tv)
		}
	case i == len(t.array):
		if v.IsNil() {
			return
		}
		t.array = append(t.array, v)
		for t.hash != nil {
			nk := Int(int32(len(t.array) + 1))
			nv, ok := t.hash[nk]
			if !ok {
				break
			}
			t.array = append(t.array, nv)
			delete(t.hash, nk)
		}
	default:
		t.setHash(Int(int32(i+1)), v)
	}
}

// Len returns the border used by `#t`: the length of the dense array
// prefix. Lua leaves the result of `#` on a table with holes
// unspecified beyond "some border"; this core reports the array part's
// length.
func (t *Table) Len() int {
	return len(t.array)
}

// Metatable returns t's metatable, or nil if it has none.
func (t *Table) Metatable() *Table {
	return t.metatable
}

// SetMetatable installs mt as t's metatable. It fails if t's current
// metatable is protected (its __metatable field is non-nil).
func (t *Table) SetMetatable(mt *Table) error {
	if t.metatable != nil && !t.metatable.RawGet(Str("__metatable")).IsNil() {
		return errProtectedMetatable()
	}
	t.metatable = mt
	return nil
}

// VisibleMetatable returns the value user code sees when it asks for
// t's metatable: __metatable's value if the metatable is protected,
// otherwise the metatable itself wrapped as a Value (or Nil if t has
// none).
func (t *Table) VisibleMetatable() Value {
	if t.metatable == nil {
		return Nil
	}
	if mv := t.metatable.RawGet(Str("__metatable")); !mv.IsNil() {
		return mv
	}
	return TableValue(t.metatable)
}

// next returns the key/value pair that follows k in t's iteration
// order, or (Nil, Nil, false) once iteration is exhausted. Passing Nil
// starts iteration from the beginning. The array part is walked in
// index order before the hash part, and the hash part in a fixed,
// deterministic (not insertion) order so that repeated traversals of an
// unmodified table agree.
func (t *Table) next(k Value) (Value, Value, bool) {
	keys := t.iterationKeys()
	if k.IsNil() {
		if len(keys) == 0 {
			return Nil, Nil, false
		}
		return keys[0], t.RawGet(keys[0]), true
	}

	nk := normalizeKey(k)
	for idx, ik := range keys {
		if ik == nk {
			if idx+1 < len(keys) {
				return keys[idx+1], t.RawGet(keys[idx+1]), true
			}
			return Nil, Nil, false
		}
	}
	return Nil, Nil, false
}

func (t *Table) iterationKeys() []Value {
	keys := make([]Value, 0, len(t.array)+len(t.hash))
	for i, v := range t.array {
		if !v.IsNil() {
			keys = append(keys, Int(int32(i+1)))
		}
	}
	if len(t.hash) == 0 {
		return keys
	}
	hkeys := make([]Value, 0, len(t.hash))
	for k := range t.hash {
		hkeys = append(hkeys, k)
	}
	sort.Slice(hkeys, func(i, j int) bool {
		return fmt.Sprint(hkeys[i]) < fmt.Sprint(hkeys[j])
	})
	return append(keys, hkeys...)
}

// Insert shifts elements at and after pos (1-based) up by one and
// stores v at pos, the way table.insert's 3-argument form does. pos
// equal to Len()+1 appends.
func (t *Table) Insert(pos int, v Value) error {
	n := t.Len()
	if pos < 1 || pos > n+1 {
		return fmt.Errorf("bad argument #2 to 'insert' (position out of bounds)")
	}
	for i := n; i >= pos; i-- {
		t.forceSet(Int(int32(i+1)), t.RawGet(Int(int32(i))))
	}
	t.forceSet(Int(int32(pos)), v)
	return nil
}

// Remove removes and returns the element at pos (1-based), shifting
// later elements down by one. pos of 0 stands for Len(), removing the
// last element. On an empty table Remove returns Nil and no error for
// any pos; otherwise a pos outside 1..Len() is an error.
func (t *Table) Remove(pos int) (Value, error) {
	n := t.Len()
	if n == 0 {
		return Nil, nil
	}
	if pos == 0 {
		pos = n
	}
	if pos < 1 || pos > n {
		return Nil, fmt.Errorf("bad argument #1 to 'remove' (position out of bounds)")
	}
	removed := t.RawGet(Int(int32(pos)))
	for i := pos; i < n; i++ {
		t.forceSet(Int(int32(i)), t.RawGet(Int(int32(i+1))))
	}
	t.forceSet(Int(int32(n)), Nil)
	return removed, nil
}

// Concat joins the elements at integer keys i to j (1-based, inclusive)
// with sep between them, the way table.concat does. Every element in
// range must be a string or number; anything else is an error.
func (t *Table) Concat(sep string, i, j int) (string, error) {
	if i > j {
		return "", nil
	}
	var b strings.Builder
	for k := i; k <= j; k++ {
		v := t.RawGet(Int(int32(k)))
		s, ok := concatString(v)
		if !ok {
			return "", fmt.Errorf("invalid value (%s) at index %d in table for 'concat'", v.TypeName(), k)
		}
		b.WriteString(s)
		if k < j {
			b.WriteString(sep)
		}
	}
	return b.String(), nil
}

// Unpack returns the elements from i to j (1-based, inclusive) as a
// slice, the way table.unpack does.
func (t *Table) Unpack(i, j int) []Value {
	if i > j {
		return nil
	}
	out := make([]Value, 0, j-i+1)
	for k := i; k <= j; k++ {
		out = append(out, t.RawGet(Int(int32(k))))
	}
	return out
}

// Less is the comparator Sort orders elements by: it reports whether a
// sorts before b, and an error it returns aborts the sort. Sort has no
// built-in default comparator; it calls the Less it is given.
type Less func(a, b Value) (bool, error)

// Sort sorts the array part in place using less, falling back to a
// heap sort once the quicksort-style partitioning below exceeds its
// allotted depth, exactly as the reference table-sort algorithm does to
// guarantee O(n log n) even for adversarial inputs (and to keep an
// order function that lies from looping forever).
func (t *Table) Sort(less Less) error {
	n := t.Len()
	if n < 2 {
		return nil
	}
	return sortRange(t.array, 0, n-1, n, less)
}

func sortSwap(a []Value, i, j int) {
	a[i], a[j] = a[j], a[i]
}

func sortLess(a []Value, i, j int, less Less) (bool, error) {
	return less(a[i], a[j])
}

func sortHeap(a []Value, l, u int, less Less) error {
	count := u - l + 1
	for i := count/2 - 1; i >= 0; i-- {
		if err := siftHeap(a, l, u, less, i); err != nil {
			return err
		}
	}
	for i := count - 1; i > 0; i-- {
		sortSwap(a, l, l+i)
		if err := siftHeap(a, l, l+i-1, less, 0); err != nil {
			return err
		}
	}
	return nil
}

func siftHeap(a []Value, l, u int, less Less, root int) error {
	count := u - l + 1
	for root*2+2 < count {
		left, right := root*2+1, root*2+2
		next := root
		if r, err := sortLess(a, l+next, l+left, less); err != nil {
			return err
		} else if r {
			next = left
		}
		if r, err := sortLess(a, l+next, l+right, less); err != nil {
			return err
		} else if r {
			next = right
		}
		if next == root {
			return nil
		}
		sortSwap(a, l+root, l+next)
		root = next
	}
	if lastleft := root*2 + 1; lastleft == count-1 {
		if r, err := sortLess(a, l+root, l+lastleft, less); err != nil {
			return err
		} else if r {
			sortSwap(a, l+root, l+lastleft)
		}
	}
	return nil
}

func sortRange(a []Value, l, u, limit int, less Less) error {
	for l < u {
		if limit == 0 {
			return sortHeap(a, l, u, less)
		}
		if r, err := sortLess(a, u, l, less); err != nil {
			return err
		} else if r {
			sortSwap(a, u, l)
		}
		if u-l == 1 {
			return nil
		}

		m := l + (u-l)>>1
		if r, err := sortLess(a, m, l, less); err != nil {
			return err
		} else if r {
			sortSwap(a, m, l)
		} else if r, err := sortLess(a, u, m, less); err != nil {
			return err
		} else if r {
			sortSwap(a, m, u)
		}
		if u-l == 2 {
			return nil
		}

		p := u - 1
		sortSwap(a, m, u-1)

		i, j := l, u-1
		for {
			i++
			for {
				r, err := sortLess(a, i, p, less)
				if err != nil {
					return err
				}
				if !r {
					break
				}
				if i >= u {
					return fmt.Errorf("invalid order function for sorting")
				}
				i++
			}
			j--
			for {
				r, err := sortLess(a, p, j, less)
				if err != nil {
					return err
				}
				if !r {
					break
				}
				if j <= l {
					return fmt.Errorf("invalid order function for sorting")
				}
				j--
			}
			if j < i {
				break
			}
			sortSwap(a, i, j)
		}
		sortSwap(a, p, i)

		limit = limit>>1 + limit>>2
		if i-l < u-i {
			if err := sortRange(a, l, i-1, limit, less); err != nil {
				return err
			}
			l = i + 1
		} else {
			if err := sortRange(a, i+1, u, limit, less); err != nil {
				return err
			}
			u = i - 1
		}
	}
	return nil
}
