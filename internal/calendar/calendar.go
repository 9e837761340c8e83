// Package calendar holds the date arithmetic used to place the daily reminder.
// Every operation is evaluated in the calendar's location.
package calendar

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

const (
	minYear = 1
	maxYear = 9999

	// days between 0001-01-01 and 9999-12-31
	maxDayOffset  = 3652059
	maxHourOffset = math.MaxInt64 / int64(time.Hour)

	mediumDateTimeLayout = "Jan 2, 2006 at 3:04:05 PM"
)

type Calendar struct {
	loc *time.Location
}

func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc}
}

// Local returns a calendar bound to the process time zone.
func Local() *Calendar {
	return New(time.Local)
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// StartOfDay zeroes the hour, minute and second of t.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// AddDays moves t by n calendar days keeping the wall clock, so a DST change
// in between does not shift the time of day.
func (c *Calendar) AddDays(t time.Time, n int) (time.Time, error) {
	if n > maxDayOffset || n < -maxDayOffset {
		return time.Time{}, fmt.Errorf("%w: add %d days to %s", domain.ErrDateArithmetic, n, t.Format(time.RFC3339))
	}
	return c.checkRange(t.In(c.loc).AddDate(0, 0, n))
}

// AddHours moves t by n elapsed hours.
func (c *Calendar) AddHours(t time.Time, n int) (time.Time, error) {
	if int64(n) > maxHourOffset || int64(n) < -maxHourOffset {
		return time.Time{}, fmt.Errorf("%w: add %d hours to %s", domain.ErrDateArithmetic, n, t.Format(time.RFC3339))
	}
	return c.checkRange(t.In(c.loc).Add(time.Duration(n) * time.Hour))
}

func (c *Calendar) PreviousDay(t time.Time) (time.Time, error) {
	return c.AddDays(t, -1)
}

func (c *Calendar) NextDay(t time.Time) (time.Time, error) {
	return c.AddDays(t, 1)
}

func (c *Calendar) checkRange(t time.Time) (time.Time, error) {
	if y := t.Year(); y < minYear || y > maxYear {
		return time.Time{}, fmt.Errorf("%w: year %d", domain.ErrDateArithmetic, y)
	}
	return t, nil
}

func (c *Calendar) IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsSameWeek compares ISO 8601 (year, week) pairs.
func (c *Calendar) IsSameWeek(a, b time.Time) bool {
	ay, aw := a.In(c.loc).ISOWeek()
	by, bw := b.In(c.loc).ISOWeek()
	return ay == by && aw == bw
}

// DaysOfWeek returns the start of each day in t's ISO week, Monday first.
func (c *Calendar) DaysOfWeek(t time.Time) []time.Time {
	today := c.StartOfDay(t)
	// time.Weekday counts from Sunday
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)

	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, monday.AddDate(0, 0, i))
	}
	return days
}

// YearMonthDayEncode concatenates the unpadded year, month and day digits,
// e.g. 2021-12-04 becomes 2021124. Distinct dates can share a value
// (2021-01-24 and 2021-12-04 both give 2021124); callers use it only as a
// cheap grouping key.
func (c *Calendar) YearMonthDayEncode(t time.Time) int {
	y, m, d := t.In(c.loc).Date()
	encoded, err := strconv.Atoi(strconv.Itoa(y) + strconv.Itoa(int(m)) + strconv.Itoa(d))
	if err != nil {
		return int(t.Unix())
	}
	return encoded
}

// HasExplicitTimeOfDay is false only for times at exactly hh:mm 00:00.
func (c *Calendar) HasExplicitTimeOfDay(t time.Time) bool {
	lt := t.In(c.loc)
	return lt.Hour() != 0 || lt.Minute() != 0
}

func (c *Calendar) WeekdayName(t time.Time) string {
	return t.In(c.loc).Weekday().String()
}

func (c *Calendar) DayNumber(t time.Time) int {
	return t.In(c.loc).Day()
}

func (c *Calendar) HourNumber(t time.Time) int {
	return t.In(c.loc).Hour()
}

func (c *Calendar) FormatDateTime(t time.Time) string {
	return t.In(c.loc).Format(mediumDateTimeLayout)
}
