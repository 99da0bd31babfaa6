package coord

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultClearFocusDelay is how long ClearAll waits before refocusing the
// first slot. Widget clears may complete asynchronously, so the focus must
// trail them; hosts with slower widgets tune this through Config.
const DefaultClearFocusDelay = 100 * time.Millisecond

// Observer is notified synchronously whenever a slot's availability
// changes. The embedding application uses it to decide which widget to
// mount for the slot; the coordinator itself never renders anything.
type Observer func(slotID string, a Availability)

// Config wires a Coordinator. Zero values pick defaults.
type Config struct {
	ClearFocusDelay time.Duration // 0 means DefaultClearFocusDelay
	Scheduler       Scheduler     // nil means TimerScheduler
	Logger          *log.Logger   // nil means silent
	Observer        Observer
	Sink            EventSink
}

type slot struct {
	id       string
	primary  Handle
	fallback Handle
	avail    Availability
	text     string
}

type deferredFocus struct {
	token  string
	slotID string
	cancel func()
}

// Coordinator tracks per-slot availability and applies the focus policy
// across registered slots. It must only be used from a single event loop.
type Coordinator struct {
	delay    time.Duration
	sched    Scheduler
	logger   *log.Logger
	observer Observer
	sink     EventSink

	slots map[string]*slot
	order []string // registration order, drives tie-breaks

	pending *deferredFocus
	closed  bool
}

func New(cfg Config) *Coordinator {
	c := &Coordinator{
		delay:    cfg.ClearFocusDelay,
		sched:    cfg.Scheduler,
		logger:   cfg.Logger,
		observer: cfg.Observer,
		sink:     cfg.Sink,
		slots:    make(map[string]*slot),
	}
	if c.delay <= 0 {
		c.delay = DefaultClearFocusDelay
	}
	if c.sched == nil {
		c.sched = TimerScheduler{}
	}
	return c
}

// RegisterSlot adds a slot with its preferred and fallback handles.
// Registering an existing id is a remount: handles are replaced and the
// slot's availability and text reset, but its registration order is kept.
func (c *Coordinator) RegisterSlot(id string, primary, fallback Handle) {
	if s, ok := c.slots[id]; ok {
		s.primary = primary
		s.fallback = fallback
		s.avail = Unknown
		s.text = ""
		c.emit(EventRegistered, id, "remounted")
		return
	}
	c.slots[id] = &slot{id: id, primary: primary, fallback: fallback, avail: Unknown}
	c.order = append(c.order, id)
	c.emit(EventRegistered, id, "")
}

// UnregisterSlot removes a slot. A deferred focus aimed at it is cancelled;
// if a scheduler delivers the callback anyway it no-ops.
func (c *Coordinator) UnregisterSlot(id string) {
	if _, ok := c.slots[id]; !ok {
		return
	}
	if c.pending != nil && c.pending.slotID == id {
		c.pending.cancel()
		c.pending = nil
	}
	delete(c.slots, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.emit(EventUnregistered, id, "")
}

// ReportAvailability records a slot's resolved availability. Reporting the
// same value again is a no-op; a changed value notifies the observer
// exactly once. Unknown ids auto-register, since widget mount order
// relative to registration is not guaranteed.
func (c *Coordinator) ReportAvailability(id string, available bool) {
	s := c.ensureSlot(id)
	next := availabilityOf(available)
	if s.avail == next {
		return
	}
	s.avail = next
	c.emit(EventAvailability, id, string(next))
	if c.observer != nil {
		c.observer(id, next)
	}
}

// IsAvailable reports the slot's availability, Unknown if never reported
// or never registered.
func (c *Coordinator) IsAvailable(id string) Availability {
	if s, ok := c.slots[id]; ok {
		return s.avail
	}
	return Unknown
}

// QueryAll snapshots availability for every registered slot.
func (c *Coordinator) QueryAll() map[string]Availability {
	out := make(map[string]Availability, len(c.slots))
	for id, s := range c.slots {
		out[id] = s.avail
	}
	return out
}

// Text reports the last known text for a slot.
func (c *Coordinator) Text(id string) string {
	if s, ok := c.slots[id]; ok {
		return s.text
	}
	return ""
}

// TextChanged records a slot's new text and applies the auto-advance rule:
// on a transition to empty, focus moves to the first-registered other slot
// that still has text. Repeating the same empty text does not re-fire.
func (c *Coordinator) TextChanged(id, text string) {
	s := c.ensureSlot(id)
	prev := s.text
	s.text = text
	if text != "" || prev == "" {
		return
	}
	target := c.firstNonEmptyOther(id)
	if target == nil {
		return
	}
	c.focusSlot(target, "auto-advance")
}

// ClearAll clears every slot's active handle, resets all tracked text and
// schedules a deferred focus of the first-registered slot. One failing
// handle never blocks clearing the rest.
func (c *Coordinator) ClearAll() {
	for _, id := range c.order {
		s := c.slots[id]
		if h := c.activeHandle(s); h != nil {
			if err := safeCall(h.Clear); err != nil {
				c.warn("clear failed", "slot", id, "err", err)
				c.emit(EventHandleError, id, "clear: "+err.Error())
			} else {
				c.emit(EventClear, id, "")
			}
		}
		s.text = ""
	}
	if len(c.order) == 0 {
		return
	}
	if c.pending != nil {
		c.pending.cancel()
	}
	df := &deferredFocus{token: uuid.NewString(), slotID: c.order[0]}
	c.pending = df
	df.cancel = c.sched.After(c.delay, func() { c.fireDeferred(df.token) })
	c.debug("deferred focus scheduled", "slot", df.slotID, "token", df.token, "delay", c.delay)
}

// Close tears the coordinator down and cancels any deferred focus.
func (c *Coordinator) Close() {
	c.closed = true
	if c.pending != nil {
		c.pending.cancel()
		c.pending = nil
	}
}

func (c *Coordinator) fireDeferred(token string) {
	if c.closed || c.pending == nil || c.pending.token != token {
		return
	}
	id := c.pending.slotID
	c.pending = nil
	s, ok := c.slots[id]
	if !ok {
		c.warn("deferred focus target gone", "slot", id)
		c.emit(EventStaleDrop, id, "slot unregistered before deferred focus")
		return
	}
	c.focusSlot(s, "clear-all refocus")
}

func (c *Coordinator) ensureSlot(id string) *slot {
	if s, ok := c.slots[id]; ok {
		return s
	}
	s := &slot{id: id, avail: Unknown}
	c.slots[id] = s
	c.order = append(c.order, id)
	c.emit(EventRegistered, id, "auto-registered")
	return s
}

// activeHandle picks the handle the embedding application is rendering for
// this slot: the preferred one unless availability resolved to unavailable.
func (c *Coordinator) activeHandle(s *slot) Handle {
	if s.avail == Unavailable {
		return s.fallback
	}
	return s.primary
}

func (c *Coordinator) firstNonEmptyOther(id string) *slot {
	for _, v := range c.order {
		if v == id {
			continue
		}
		if s := c.slots[v]; s.text != "" {
			return s
		}
	}
	return nil
}

func (c *Coordinator) focusSlot(s *slot, reason string) {
	h := c.activeHandle(s)
	if h == nil {
		c.warn("no handle to focus", "slot", s.id, "availability", s.avail)
		return
	}
	if err := safeCall(h.Focus); err != nil {
		c.warn("focus failed", "slot", s.id, "err", err)
		c.emit(EventHandleError, s.id, "focus: "+err.Error())
		return
	}
	c.emit(EventFocus, s.id, reason)
}

func (c *Coordinator) emit(kind EventKind, slotID, detail string) {
	if c.sink == nil {
		return
	}
	e := Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Slot:   slotID,
		Detail: detail,
		At:     time.Now(),
	}
	defer func() {
		if r := recover(); r != nil {
			c.warn("event sink panicked", "kind", kind, "slot", slotID, "panic", r)
		}
	}()
	c.sink(e)
}

// safeCall invokes a handle method, converting a panic into an error so a
// misbehaving widget can never take the coordinator down.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handle panic: %v", r)
		}
	}()
	return fn()
}

func (c *Coordinator) warn(msg string, kv ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, kv...)
	}
}

func (c *Coordinator) debug(msg string, kv ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, kv...)
	}
}
