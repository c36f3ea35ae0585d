package timezone

import (
	"fmt"
	"time"
)

// Clock is a wall-clock time of day expressed as minutes since midnight.
// It carries no date and no zone; it is meaningless without both.
type Clock int

// ParseClock parses a "HH:mm" wall-clock value.
func ParseClock(raw string) (Clock, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(raw, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	return Clock(hour*60 + minute), nil
}

// MustClock parses a clock value and panics on failure. Intended for constants
// and tests.
func MustClock(raw string) Clock {
	c, err := ParseClock(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the clock as "HH:mm".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Minutes returns the clock as minutes since midnight.
func (c Clock) Minutes() int {
	return int(c)
}

// Add returns the clock shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Normalizer converts between wall-clock local times and UTC instants using
// IANA timezone database locations. Fixed offsets are never used: wall-clock
// boundaries must track DST transitions year-round.
type Normalizer struct {
	defaultZone *time.Location
}

// NewNormalizer builds a normalizer with the configured fallback zone. The
// fallback itself must be a valid IANA identifier.
func NewNormalizer(defaultZone string) (*Normalizer, error) {
	loc, err := time.LoadLocation(defaultZone)
	if err != nil {
		return nil, fmt.Errorf("load default timezone %q: %w", defaultZone, err)
	}
	return &Normalizer{defaultZone: loc}, nil
}

// DefaultZone returns the configured fallback location.
func (n *Normalizer) DefaultZone() *time.Location {
	return n.defaultZone
}

// Zone resolves an IANA timezone identifier. An unknown or empty identifier
// degrades to the default zone with degraded=true so callers can surface the
// fallback instead of silently producing wrong instants.
func (n *Normalizer) Zone(name string) (*time.Location, bool) {
	if name == "" {
		return n.defaultZone, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return n.defaultZone, true
	}
	return loc, false
}

// ToUTC converts a calendar date plus wall-clock time in the given location to
// a UTC instant. time.Date resolves the offset in effect on that date, which
// is what keeps working-hours comparisons correct across DST transitions.
func (n *Normalizer) ToUTC(date time.Time, clock Clock, loc *time.Location) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, clock.Minutes()/60, clock.Minutes()%60, 0, 0, loc).UTC()
}

// ToLocal converts an instant into the calendar date and wall-clock time
// observed in the given location.
func (n *Normalizer) ToLocal(instant time.Time, loc *time.Location) (time.Time, Clock) {
	local := instant.In(loc)
	year, month, day := local.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return date, Clock(local.Hour()*60 + local.Minute())
}
