package datetime

import "time"

// BusinessDayCount summarises the days of a date range.
type BusinessDayCount struct {
	TotalDays    int
	BusinessDays int
	WeekendDays  int
	Holidays     int
}

// CountBusinessDays walks the range one day at a time. When includeEnd is
// false the end date itself is not counted. Holidays are only subtracted when
// they fall on a weekday inside the range; duplicates count once.
func CountBusinessDays(start, end time.Time, includeEnd bool, holidays []time.Time) BusinessDayCount {
	start, end = Day(start), Day(end)
	if !includeEnd {
		end = end.AddDate(0, 0, -1)
	}

	holidaySet := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[Day(h)] = struct{}{}
	}

	var count BusinessDayCount
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		count.TotalDays++
		switch {
		case IsWeekend(d):
			count.WeekendDays++
		case isHoliday(holidaySet, d):
			count.Holidays++
		default:
			count.BusinessDays++
		}
	}
	return count
}

func isHoliday(set map[time.Time]struct{}, d time.Time) bool {
	_, ok := set[d]
	return ok
}

// Age is a calendar difference broken into years, months and days.
type Age struct {
	Years  int
	Months int
	Days   int
}

// CalendarDifference returns the years, months and days from start to end.
// Month steps clamp to the last day of shorter months, so 31 January plus one
// month is 29 February in a leap year. end must not precede start.
func CalendarDifference(start, end time.Time) Age {
	start, end = Day(start), Day(end)
	total := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	anchor := addMonthsClamped(start, total)
	if anchor.After(end) {
		total--
		anchor = addMonthsClamped(start, total)
	}
	return Age{Years: total / 12, Months: total % 12, Days: DaysBetween(anchor, end)}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// NextAnniversary returns the first anniversary of date on or after from. A
// 29 February date rolls to 1 March in common years.
func NextAnniversary(date, from time.Time) time.Time {
	date, from = Day(date), Day(from)
	years := from.Year() - date.Year()
	candidate := date.AddDate(years, 0, 0)
	if candidate.Before(from) {
		candidate = date.AddDate(years+1, 0, 0)
	}
	return candidate
}
