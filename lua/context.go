package lua

import "sync"

// Context holds the per-type metatable slots that apply to primitive
// values (numbers, strings, booleans, nil, functions, threads). Tables
// and userdata carry their own metatable per instance instead (see
// Table.Metatable/SetMetatable), matching Lua 5.2's split between the
// per-type and per-instance metatable mechanisms.
//
// A Context is an independent runtime: two Contexts never share state,
// so a process embedding multiple sandboxes constructs one Context per
// sandbox rather than relying on package-level globals.
type Context struct {
	mu       sync.Mutex
	typeMeta [kindCount]*Table
}

// NewContext returns an empty Context with no type metatables set.
func NewContext() *Context {
	return &Context{}
}

// SetTypeMetatable sets the metatable used by every value of kind k.
// Only KindNil, KindBool, KindInt, KindFloat, KindString, KindFunction,
// and KindThread are meaningful keys; KindInt and KindFloat share the
// same slot since both report type "number". Passing mt == nil clears
// the slot. It returns an error if the existing metatable for k is
// protected (its __metatable field is non-nil).
func (c *Context) SetTypeMetatable(k Kind, mt *Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot := numberNormalizedKind(k)
	if cur := c.typeMeta[slot]; cur != nil && !cur.RawGet(Str("__metatable")).IsNil() {
		return errProtectedMetatable()
	}
	c.typeMeta[slot] = mt
	return nil
}

// GetTypeMetatable returns the metatable currently set for kind k, or
// nil if none is set.
func (c *Context) GetTypeMetatable(k Kind) *Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typeMeta[numberNormalizedKind(k)]
}

// Reset clears every type metatable slot, the way a test's teardown
// restores a Context to a pristine state between cases.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.typeMeta {
		c.typeMeta[i] = nil
	}
}

func numberNormalizedKind(k Kind) Kind {
	if k == KindFloat {
		return KindInt
	}
	return k
}
