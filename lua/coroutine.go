package lua

// Status is a coroutine's run state.
type Status uint8

const (
	StatusSuspended Status = iota
	StatusRunning
	StatusNormal
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusSuspended:
		return "suspended"
	case StatusRunning:
		return "running"
	case StatusNormal:
		return "normal"
	case StatusDead:
		return "dead"
	default:
		return "dead"
	}
}

// Coroutine is the thread value. The scheduling loop that actually
// suspends and resumes a host goroutine on yield lives outside this
// package (see the Non-goals note on coroutine scheduling); what lives
// here is the value identity and status every `coroutine.*` builtin
// and `type()` check needs regardless of how scheduling is implemented.
type Coroutine struct {
	Body   *Function
	Status Status
}

func (*Coroutine) luaRef() {}

// CoroutineValue wraps c as a Value.
func CoroutineValue(c *Coroutine) Value {
	return fromRef(KindThread, c)
}

// NewCoroutine returns a coroutine wrapping body, initially suspended.
func NewCoroutine(body *Function) *Coroutine {
	return &Coroutine{Body: body, Status: StatusSuspended}
}
