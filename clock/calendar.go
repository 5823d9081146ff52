package clock

// Simulation calendar constants. A virtual "minute" spans 1000 virtual ms,
// so a full virtual day is 1,440,000 ms regardless of scale.
const (
	MillisPerMinute uint64 = 1000
	MinutesPerHour  uint64 = 60
	HoursPerDay     uint64 = 24
	DaysPerMonth    uint64 = 30
	MonthsPerYear   uint64 = 12

	MillisPerHour  = MillisPerMinute * MinutesPerHour
	MillisPerDay   = MillisPerHour * HoursPerDay
	MillisPerMonth = MillisPerDay * DaysPerMonth
	MillisPerYear  = MillisPerMonth * MonthsPerYear
)

// DayProgressMillisOf returns the millisecond offset of t within its day.
func DayProgressMillisOf(t uint64) uint64 {
	return t % MillisPerDay
}

// DayProgressOf returns the fractional progress of t through its day, in [0, 1).
func DayProgressOf(t uint64) float64 {
	return float64(t%MillisPerDay) / float64(MillisPerDay)
}

// DayProgress returns the fractional progress of the current virtual day.
func (c *VirtualClock) DayProgress() float64 {
	return DayProgressOf(c.nowMillis)
}

// DayProgressMillis returns the millisecond offset into the current virtual day.
func (c *VirtualClock) DayProgressMillis() uint64 {
	return DayProgressMillisOf(c.nowMillis)
}

// Year returns the 1-based virtual year.
func (c *VirtualClock) Year() int {
	return int(1 + c.nowMillis/MillisPerYear)
}

// Month returns the 1-based virtual month of the year.
func (c *VirtualClock) Month() int {
	return int(1 + (c.nowMillis%MillisPerYear)/MillisPerMonth)
}

// Day returns the 1-based virtual day of the month.
func (c *VirtualClock) Day() int {
	return int(1 + (c.nowMillis%MillisPerMonth)/MillisPerDay)
}

// Hour returns the virtual hour of the day.
func (c *VirtualClock) Hour() int {
	return int((c.nowMillis % MillisPerDay) / MillisPerHour)
}

// Minute returns the virtual minute of the hour.
func (c *VirtualClock) Minute() int {
	return int((c.nowMillis % MillisPerHour) / MillisPerMinute)
}
