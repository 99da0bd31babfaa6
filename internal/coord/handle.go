package coord

// Handle is the capability surface through which the coordinator commands a
// widget. The embedding application owns the handle; the coordinator keeps a
// non-owning reference, calls through it best-effort and treats any error or
// panic from it as non-fatal.
type Handle interface {
	Focus() error
	Clear() error
	IsFocused() bool
}
