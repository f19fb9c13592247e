package lua

// Checker extracts and type-checks arguments from a Varargs, producing
// the exact "bad argument #i (expected expected, got type)" errors a
// native library function needs when a caller passes the wrong shape.
// Positions are 1-based, matching Lua's own argument numbering.
type Checker struct {
	ctx  *Context
	args Varargs
}

// NewChecker wraps args for checked extraction under ctx.
func NewChecker(ctx *Context, args Varargs) Checker {
	return Checker{ctx: ctx, args: args}
}

func (c Checker) at(i int) Value {
	return c.args.Arg(i)
}

// CheckAny requires argument i to be present (non-nil) and returns it.
func (c Checker) CheckAny(i int) (Value, error) {
	v := c.at(i)
	if v.IsNil() {
		return Nil, errArgument(i, "value", "no value")
	}
	return v, nil
}

// CheckNumber requires argument i to be a number, or a string that
// parses as one, and returns its float64 value.
func (c Checker) CheckNumber(i int) (float64, error) {
	v := c.at(i)
	n, ok := coerceNumber(v)
	if !ok {
		return 0, errArgument(i, "number", v.TypeName())
	}
	return n.ToFloat(), nil
}

// OptionalNumber is CheckNumber, but returns def when argument i is nil
// or absent instead of erroring.
func (c Checker) OptionalNumber(i int, def float64) (float64, error) {
	if c.at(i).IsNil() {
		return def, nil
	}
	return c.CheckNumber(i)
}

// CheckInt requires argument i to be a number (or numeric string) and
// narrows it to an int32 the way Value.ToInt does.
func (c Checker) CheckInt(i int) (int32, error) {
	v := c.at(i)
	n, ok := coerceNumber(v)
	if !ok {
		return 0, errArgument(i, "number", v.TypeName())
	}
	return n.ToInt(), nil
}

// OptionalInt is CheckInt, but returns def when argument i is nil or
// absent.
func (c Checker) OptionalInt(i int, def int32) (int32, error) {
	if c.at(i).IsNil() {
		return def, nil
	}
	return c.CheckInt(i)
}

// CheckString requires argument i to be a string, or a number (which
// converts to its number-to-string form), and returns the bytes.
func (c Checker) CheckString(i int) (string, error) {
	v := c.at(i)
	if s, ok := concatString(v); ok {
		return s, nil
	}
	return "", errArgument(i, "string", v.TypeName())
}

// OptionalString is CheckString, but returns def when argument i is nil
// or absent.
func (c Checker) OptionalString(i int, def string) (string, error) {
	if c.at(i).IsNil() {
		return def, nil
	}
	return c.CheckString(i)
}

// CheckBool requires argument i to be a boolean and returns it.
func (c Checker) CheckBool(i int) (bool, error) {
	v := c.at(i)
	if !v.IsBool() {
		return false, errArgument(i, "boolean", v.TypeName())
	}
	return v.b, nil
}

// OptionalBool is CheckBool, but returns def when argument i is nil or
// absent.
func (c Checker) OptionalBool(i int, def bool) (bool, error) {
	if c.at(i).IsNil() {
		return def, nil
	}
	return c.CheckBool(i)
}

// CheckTable requires argument i to be a table and returns it.
func (c Checker) CheckTable(i int) (*Table, error) {
	v := c.at(i)
	if !v.IsTable() {
		return nil, errArgument(i, "table", v.TypeName())
	}
	return v.Table(), nil
}

// OptionalTable is CheckTable, but returns nil when argument i is nil
// or absent.
func (c Checker) OptionalTable(i int) (*Table, error) {
	if c.at(i).IsNil() {
		return nil, nil
	}
	return c.CheckTable(i)
}

// CheckFunction requires argument i to be a function and returns it.
func (c Checker) CheckFunction(i int) (*Function, error) {
	v := c.at(i)
	if !v.IsFunction() {
		return nil, errArgument(i, "function", v.TypeName())
	}
	return v.Function(), nil
}

// OptionalFunction is CheckFunction, but returns nil when argument i is
// nil or absent.
func (c Checker) OptionalFunction(i int) (*Function, error) {
	if c.at(i).IsNil() {
		return nil, nil
	}
	return c.CheckFunction(i)
}
