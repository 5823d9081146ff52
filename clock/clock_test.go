package clock

import (
	"testing"
	"time"
)

func newTestClock() (*VirtualClock, *MockTimeProvider) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(mock), mock
}

func TestUpdateAdvancesScaledTime(t *testing.T) {
	c, mock := newTestClock()

	mock.Advance(100 * time.Millisecond)
	c.Update()
	if c.NowMillis() != 100 {
		t.Errorf("Expected 100 virtual ms after 100 real ms at 1x, got %d", c.NowMillis())
	}

	c.SetScale(2.0)
	mock.Advance(50 * time.Millisecond)
	c.Update()
	if c.NowMillis() != 200 {
		t.Errorf("Expected 200 virtual ms after 50 real ms at 2x, got %d", c.NowMillis())
	}

	// Retargeting scale never rewrites accumulated time
	c.SetScale(0.0)
	mock.Advance(time.Hour)
	c.Update()
	if c.NowMillis() != 200 {
		t.Errorf("Expected virtual time frozen at scale 0, got %d", c.NowMillis())
	}
}

func TestPauseResume(t *testing.T) {
	c, mock := newTestClock()

	mock.Advance(40 * time.Millisecond)
	c.Update()

	c.Pause()
	if !c.IsPaused() {
		t.Fatal("Expected clock paused")
	}

	mock.Advance(5 * time.Second)
	c.Update()
	if c.NowMillis() != 40 {
		t.Errorf("Expected no advancement while paused, got %d", c.NowMillis())
	}

	c.Resume()
	mock.Advance(10 * time.Millisecond)
	c.Update()
	if c.NowMillis() != 50 {
		t.Errorf("Expected pause duration excluded after resume, got %d", c.NowMillis())
	}
}

func TestCheckInterval(t *testing.T) {
	c, mock := newTestClock()

	var last uint64
	if c.CheckInterval(15, &last) {
		t.Error("Expected interval not yet elapsed at time zero")
	}

	mock.Advance(16 * time.Millisecond)
	c.Update()
	if !c.CheckInterval(15, &last) {
		t.Error("Expected interval elapsed after 16 ms")
	}
	if last != c.NowMillis() {
		t.Errorf("Expected last updated to now on success, got %d", last)
	}
	if c.CheckInterval(15, &last) {
		t.Error("Expected immediate re-check to fail")
	}
}

func TestCheckIntervalRealtimeIgnoresScale(t *testing.T) {
	c, mock := newTestClock()
	c.SetScale(1000.0)

	last := mock.Now()
	if c.CheckIntervalRealtime(100*time.Millisecond, &last) {
		t.Error("Expected real interval not elapsed")
	}

	mock.Advance(101 * time.Millisecond)
	if !c.CheckIntervalRealtime(100*time.Millisecond, &last) {
		t.Error("Expected real interval elapsed regardless of virtual scale")
	}
}

func TestCalendar(t *testing.T) {
	c, mock := newTestClock()

	offset := MillisPerYear + 2*MillisPerMonth + 3*MillisPerDay + 4*MillisPerHour + 5*MillisPerMinute
	mock.Advance(time.Duration(offset) * time.Millisecond)
	c.Update()

	if got := c.Year(); got != 2 {
		t.Errorf("Year = %d, want 2", got)
	}
	if got := c.Month(); got != 3 {
		t.Errorf("Month = %d, want 3", got)
	}
	if got := c.Day(); got != 4 {
		t.Errorf("Day = %d, want 4", got)
	}
	if got := c.Hour(); got != 4 {
		t.Errorf("Hour = %d, want 4", got)
	}
	if got := c.Minute(); got != 5 {
		t.Errorf("Minute = %d, want 5", got)
	}

	wantDayMS := 4*MillisPerHour + 5*MillisPerMinute
	if got := c.DayProgressMillis(); got != wantDayMS {
		t.Errorf("DayProgressMillis = %d, want %d", got, wantDayMS)
	}

	prog := c.DayProgress()
	if prog < 0 || prog >= 1 {
		t.Errorf("DayProgress = %v, want [0, 1)", prog)
	}
}

func TestSince(t *testing.T) {
	c, mock := newTestClock()

	mock.Advance(500 * time.Millisecond)
	c.Update()
	start := c.NowMillis()

	mock.Advance(250 * time.Millisecond)
	c.Update()

	if got := c.Since(start); got != 250 {
		t.Errorf("Since = %d, want 250", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	c, mock := newTestClock()

	mock.Advance(1234 * time.Millisecond)
	c.Update()
	c.SetScale(4.0)
	c.Pause()

	snap := c.SnapshotState()

	d, _ := newTestClock()
	d.RestoreState(snap)

	if d.NowMillis() != 1234 {
		t.Errorf("Restored NowMillis = %d, want 1234", d.NowMillis())
	}
	if d.Scale() != 4.0 {
		t.Errorf("Restored Scale = %v, want 4.0", d.Scale())
	}
	if !d.IsPaused() {
		t.Error("Expected restored clock paused")
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, mock.Now())
	}

	mock.Advance(time.Hour)
	mock.Advance(30 * time.Minute)
	want := start.Add(90 * time.Minute)
	if !mock.Now().Equal(want) {
		t.Errorf("Expected %v after advances, got %v", want, mock.Now())
	}

	later := start.Add(24 * time.Hour)
	mock.SetTime(later)
	if !mock.Now().Equal(later) {
		t.Errorf("Expected %v after SetTime, got %v", later, mock.Now())
	}
}
