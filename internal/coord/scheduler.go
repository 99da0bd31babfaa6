package coord

import "time"

// Scheduler defers a callback by a duration. After returns a cancel
// function; cancelling is idempotent and best-effort (a callback already in
// flight still runs, which is why deferred work re-checks registration).
//
// TimerScheduler is the default. Hosts with a loop-confined threading model
// (a TUI update loop, for example) should supply their own scheduler that
// delivers callbacks on that loop instead.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules through time.AfterFunc. Callbacks fire on a
// timer goroutine, so it only suits hosts that tolerate that.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
