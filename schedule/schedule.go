// Package schedule defines schedules of scorebot scheduled actions and how they translate to
// gocron jobs
package schedule

import (
	"fmt"
	"github.com/marcsantiago/gocron"
	"strings"
	"time"
)

// Definition represents the schedule of a recurring action
type Definition struct {
	// Interval value (every 1 minute would be expressed with an interval of 1). Must be set explicitly or implicitly (a weekday value implicitly sets the interval to 1)
	Interval uint64

	// Must be set explicitly or implicitly ("weeks" is implicitly set when "Weekday" is set). Valid time units are: "weeks", "hours", "days", "minutes", "seconds"
	Unit string

	// Optional day of the week. If set, unit and interval are ignored and implicitly considered to be "every 1 week"
	Weekday string

	// Optional "at time" value (i.e. "10:30")
	AtTime string
}

// Unit values
const (
	Weeks   = "weeks"
	Hours   = "hours"
	Days    = "days"
	Minutes = "minutes"
	Seconds = "seconds"
)

var weekdayToNumeral = map[string]time.Weekday{
	time.Monday.String():    time.Monday,
	time.Tuesday.String():   time.Tuesday,
	time.Wednesday.String(): time.Wednesday,
	time.Thursday.String():  time.Thursday,
	time.Friday.String():    time.Friday,
	time.Saturday.String():  time.Saturday,
	time.Sunday.String():    time.Sunday,
}

// String returns a human-friendly string for the Definition
func (d Definition) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Every ")

	if d.Weekday != "" {
		fmt.Fprintf(&b, "%s", d.Weekday)
	} else if d.Interval == 1 {
		fmt.Fprintf(&b, "%s", strings.TrimSuffix(d.Unit, "s"))
	} else {
		fmt.Fprintf(&b, "%d %s", d.Interval, d.Unit)
	}

	if d.AtTime != "" {
		fmt.Fprintf(&b, " at %s", d.AtTime)
	}

	return b.String()
}

// Builder holds a Definition to build
type Builder struct {
	definition Definition
}

// New returns a Builder for a schedule running every 1 unit
func New() (b *Builder) {
	b = new(Builder)
	b.definition.Interval = 1

	return b
}

// Every sets the unit or the weekday of the schedule (i.e. schedule.Minutes or time.Monday.String())
func (b *Builder) Every(unitOrWeekday string) *Builder {
	if _, ok := weekdayToNumeral[unitOrWeekday]; ok {
		b.definition.Weekday = unitOrWeekday
		b.definition.Interval = 1
	} else {
		b.definition.Unit = unitOrWeekday
	}

	return b
}

// Times sets the interval of the schedule (i.e. New().Times(5).Every(schedule.Minutes))
func (b *Builder) Times(interval uint64) *Builder {
	b.definition.Interval = interval
	return b
}

// AtTime sets the time of day of the schedule
func (b *Builder) AtTime(atTime string) *Builder {
	b.definition.AtTime = atTime
	return b
}

// Build returns the Definition
func (b *Builder) Build() Definition {
	return b.definition
}

// EveryDuration returns the Definition of a schedule running every d, using the largest unit that
// divides d evenly. Durations shorter than a second are rounded up to a second
func EveryDuration(d time.Duration) Definition {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return New().Times(uint64(d / time.Hour)).Every(Hours).Build()
	case d >= time.Minute && d%time.Minute == 0:
		return New().Times(uint64(d / time.Minute)).Every(Minutes).Build()
	case d >= time.Second:
		return New().Times(uint64(d / time.Second)).Every(Seconds).Build()
	}

	return New().Every(Seconds).Build()
}

// NewJob sets up the gocron.Job with the schedule and leaves the task undefined for the caller to set up
func NewJob(s *gocron.Scheduler, d Definition) (j *gocron.Job, err error) {
	j = s.Every(d.Interval, false)

	if _, ok := weekdayToNumeral[d.Weekday]; ok {
		switch d.Weekday {
		case time.Monday.String():
			j = j.Monday()
		case time.Tuesday.String():
			j = j.Tuesday()
		case time.Wednesday.String():
			j = j.Wednesday()
		case time.Thursday.String():
			j = j.Thursday()
		case time.Friday.String():
			j = j.Friday()
		case time.Saturday.String():
			j = j.Saturday()
		case time.Sunday.String():
			j = j.Sunday()
		}
	} else {
		switch d.Unit {
		case Weeks:
			j = j.Weeks()
		case Hours:
			j = j.Hours()
		case Days:
			j = j.Days()
		case Minutes:
			j = j.Minutes()
		case Seconds:
			j = j.Seconds()
		}
	}

	if d.AtTime != "" {
		j = j.At(d.AtTime)
	}

	if j.Err() != nil {
		return nil, j.Err()
	}

	return j, nil
}
