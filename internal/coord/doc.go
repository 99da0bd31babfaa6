// Package coord contains the fallback coordination policy shared by all
// input slots.
//
// Allowed here:
// - slot registration and availability state machines
// - the auto-advance focus rule and clear-all orchestration
// - scheduling contracts for deferred focus
//
// Not allowed here:
// - widget rendering or key handling
// - storage, terminal, or any other host concern
//
// The coordinator is confined to the host's event loop: it holds no locks,
// performs no I/O and never blocks. The only asynchronous element is the
// deferred focus issued by ClearAll, which goes through the injected
// Scheduler so the host decides how callbacks are delivered.
package coord
