package lua

// Userdata wraps an arbitrary Go value as a Lua value, with its own
// optional per-instance metatable (the same mechanism a Table uses).
type Userdata struct {
	Data      any
	metatable *Table
}

func (*Userdata) luaRef() {}

// UserdataValue wraps u as a Value.
func UserdataValue(u *Userdata) Value {
	return fromRef(KindUserdata, u)
}

// NewUserdata wraps data as a Userdata with no metatable.
func NewUserdata(data any) *Userdata {
	return &Userdata{Data: data}
}

// Metatable returns u's metatable, or nil if it has none.
func (u *Userdata) Metatable() *Table {
	return u.metatable
}

// SetMetatable installs mt as u's metatable. It fails if u's current
// metatable is protected (its __metatable field is non-nil).
func (u *Userdata) SetMetatable(mt *Table) error {
	if u.metatable != nil && !u.metatable.RawGet(Str("__metatable")).IsNil() {
		return errProtectedMetatable()
	}
	u.metatable = mt
	return nil
}

// VisibleMetatable returns the value user code sees when it asks for
// u's metatable, honouring __metatable protection the same way a
// Table's does.
func (u *Userdata) VisibleMetatable() Value {
	if u.metatable == nil {
		return Nil
	}
	if mv := u.metatable.RawGet(Str("__metatable")); !mv.IsNil() {
		return mv
	}
	return TableValue(u.metatable)
}
