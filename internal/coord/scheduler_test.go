package coord

import (
	"testing"
	"time"
)

func TestTimerSchedulerFires(t *testing.T) {
	done := make(chan struct{})
	TimerScheduler{}.After(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer callback never fired")
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	fired := make(chan struct{}, 1)
	cancel := TimerScheduler{}.After(50*time.Millisecond, func() { fired <- struct{}{} })
	cancel()
	select {
	case <-fired:
		t.Fatal("cancelled timer fired anyway")
	case <-time.After(150 * time.Millisecond):
	}
}
