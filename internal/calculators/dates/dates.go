// Package dates holds calendar calculators. Calculators that depend on the
// current date take a clock so results are reproducible in tests.
package dates

import (
	"fmt"
	"time"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/datetime"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

// Clock returns the current time.
type Clock func() time.Time

// maxBusinessDaySpan bounds business-day ranges to roughly ten years.
const maxBusinessDaySpan = 3660

// All returns every date calculator using clock for "today".
func All(clock Clock) []widget.Widget {
	return []widget.Widget{
		BusinessDays(),
		Age(clock),
		DateDifference(),
		DueDate(clock),
	}
}

type businessInput struct {
	start      time.Time
	end        time.Time
	includeEnd bool
	holidays   []time.Time
}

// BusinessDays counts weekdays between two dates, excluding holidays.
func BusinessDays() widget.Widget {
	return widget.Definition[businessInput, datetime.BusinessDayCount]{
		Meta: widget.Info{
			Slug:        "business-days",
			Title:       "Business Days Calculator",
			Category:    widget.CategoryDates,
			Description: "Working days between two dates, excluding weekends and public holidays.",
			Fields: []widget.Field{
				widget.Date("start", "Start date"),
				widget.Date("end", "End date"),
				widget.Checkbox("includeEnd", "Include end date").WithDefault("on"),
				widget.List("holidays", "Public holidays").AsOptional().WithHint("YYYY-MM-DD, one per line."),
			},
		},
		Gather: func(f widget.Form) (businessInput, error) {
			var in businessInput
			var err error
			if in.start, err = f.Date("start", "Start date"); err != nil {
				return in, err
			}
			if in.end, err = f.Date("end", "End date"); err != nil {
				return in, err
			}
			if err = validation.NotBefore("end", "End date must be on or after the start date.", in.start, in.end); err != nil {
				return in, err
			}
			if datetime.DaysBetween(in.start, in.end) > maxBusinessDaySpan {
				return in, validation.Invalid("end", "Date range cannot exceed %d days.", maxBusinessDaySpan)
			}
			in.includeEnd = f.BoolDefault("includeEnd", true)
			in.holidays, err = f.Dates("holidays", "Public holidays")
			return in, err
		},
		Compute: func(in businessInput) datetime.BusinessDayCount {
			return datetime.CountBusinessDays(in.start, in.end, in.includeEnd, in.holidays)
		},
		Present: func(_ *format.Formatter, in businessInput, out datetime.BusinessDayCount) widget.Result {
			var r widget.Result
			r.Headline = "Business days"
			r.Emphasize("Business days", fmt.Sprintf("%d", out.BusinessDays))
			r.Add("Weekend days", fmt.Sprintf("%d", out.WeekendDays))
			r.Add("Holidays excluded", fmt.Sprintf("%d", out.Holidays))
			r.Add("Total days", fmt.Sprintf("%d", out.TotalDays))
			r.Summary = fmt.Sprintf("%s between %s and %s.",
				format.Plural(out.BusinessDays, "business day", "business days"),
				in.start.Format(constants.DateLayout), in.end.Format(constants.DateLayout))
			return r
		},
	}
}

type ageInput struct {
	birth time.Time
	asOf  time.Time
}

type ageOutput struct {
	age          datetime.Age
	totalDays    int
	nextBirthday time.Time
	daysUntil    int
}

// Age computes a calendar age and the days until the next birthday.
func Age(clock Clock) widget.Widget {
	return widget.Definition[ageInput, ageOutput]{
		Meta: widget.Info{
			Slug:        "age",
			Title:       "Age Calculator",
			Category:    widget.CategoryDates,
			Description: "Exact age in years, months and days, and the next birthday.",
			Fields: []widget.Field{
				widget.Date("birth", "Date of birth"),
				widget.Date("asOf", "Age on").AsOptional().WithHint("Defaults to today."),
			},
		},
		Gather: func(f widget.Form) (ageInput, error) {
			var in ageInput
			var err error
			if in.birth, err = f.Date("birth", "Date of birth"); err != nil {
				return in, err
			}
			if in.asOf, err = f.DateOr("asOf", "Age on", clock()); err != nil {
				return in, err
			}
			return in, validation.NotBefore("birth", "Date of birth cannot be in the future.", in.birth, in.asOf)
		},
		Compute: func(in ageInput) ageOutput {
			next := datetime.NextAnniversary(in.birth, in.asOf)
			return ageOutput{
				age:          datetime.CalendarDifference(in.birth, in.asOf),
				totalDays:    datetime.DaysBetween(in.birth, in.asOf),
				nextBirthday: next,
				daysUntil:    datetime.DaysBetween(in.asOf, next),
			}
		},
		Present: func(f *format.Formatter, _ ageInput, out ageOutput) widget.Result {
			var r widget.Result
			r.Headline = "Age"
			r.Emphasize("Age", fmt.Sprintf("%s, %s, %s",
				format.Plural(out.age.Years, "year", "years"),
				format.Plural(out.age.Months, "month", "months"),
				format.Plural(out.age.Days, "day", "days")))
			r.Add("Total days", f.Integer(float64(out.totalDays)))
			r.Add("Next birthday", out.nextBirthday.Format(constants.DateLayout))
			if out.daysUntil == 0 {
				r.Add("Days until next birthday", "Today")
			} else {
				r.Add("Days until next birthday", fmt.Sprintf("%d", out.daysUntil))
			}
			r.Summary = fmt.Sprintf("I am %s old.", format.Plural(out.age.Years, "year", "years"))
			return r
		},
	}
}

type spanInput struct {
	start time.Time
	end   time.Time
}

// DateDifference measures the span between two dates.
func DateDifference() widget.Widget {
	return widget.Definition[spanInput, datetime.Age]{
		Meta: widget.Info{
			Slug:        "date-difference",
			Title:       "Date Difference Calculator",
			Category:    widget.CategoryDates,
			Description: "Days, weeks and months between two dates.",
			Fields: []widget.Field{
				widget.Date("start", "Start date"),
				widget.Date("end", "End date"),
			},
		},
		Gather: func(f widget.Form) (spanInput, error) {
			var in spanInput
			var err error
			if in.start, err = f.Date("start", "Start date"); err != nil {
				return in, err
			}
			if in.end, err = f.Date("end", "End date"); err != nil {
				return in, err
			}
			return in, validation.NotBefore("end", "End date must be on or after the start date.", in.start, in.end)
		},
		Compute: func(in spanInput) datetime.Age {
			return datetime.CalendarDifference(in.start, in.end)
		},
		Present: func(f *format.Formatter, in spanInput, out datetime.Age) widget.Result {
			days := datetime.DaysBetween(in.start, in.end)
			var r widget.Result
			r.Headline = "Date difference"
			r.Emphasize("Days", f.Integer(float64(days)))
			r.Add("Weeks", fmt.Sprintf("%s, %s",
				format.Plural(days/7, "week", "weeks"), format.Plural(days%7, "day", "days")))
			r.Add("Calendar", fmt.Sprintf("%s, %s, %s",
				format.Plural(out.Years, "year", "years"),
				format.Plural(out.Months, "month", "months"),
				format.Plural(out.Days, "day", "days")))
			r.Add("Months (approx.)", format.Fixed(float64(days)/(constants.DaysPerYear/float64(constants.MonthsPerYear)), 1))
			r.Summary = fmt.Sprintf("%s between %s and %s.", format.Plural(days, "day", "days"),
				in.start.Format(constants.DateLayout), in.end.Format(constants.DateLayout))
			return r
		},
	}
}

const (
	gestationDays      = 280
	defaultCycleLength = 28
)

type dueInput struct {
	lmp   time.Time
	cycle int
	today time.Time
}

type dueOutput struct {
	due       time.Time
	week      int
	day       int
	pregnant  bool
	daysToDue int
}

// DueDate estimates a due date from the last menstrual period using
// Naegele's rule adjusted for cycle length.
func DueDate(clock Clock) widget.Widget {
	return widget.Definition[dueInput, dueOutput]{
		Meta: widget.Info{
			Slug:        "due-date",
			Title:       "Pregnancy Due Date Calculator",
			Category:    widget.CategoryDates,
			Description: "Estimated due date and current week of pregnancy.",
			Fields: []widget.Field{
				widget.Date("lmp", "First day of last period"),
				widget.Number("cycle", "Cycle length").WithUnit("days").AsOptional().WithDefault("28"),
			},
		},
		Gather: func(f widget.Form) (dueInput, error) {
			var in dueInput
			var err error
			if in.lmp, err = f.Date("lmp", "First day of last period"); err != nil {
				return in, err
			}
			cycle := f.Optional("cycle", defaultCycleLength)
			err = validation.First(
				validation.Integer("cycle", "Cycle length", cycle),
				validation.Range("cycle", "Cycle length", cycle, 20, 45),
			)
			in.cycle = int(cycle)
			in.today = datetime.Day(clock())
			return in, err
		},
		Compute: func(in dueInput) dueOutput {
			due := in.lmp.AddDate(0, 0, gestationDays+in.cycle-defaultCycleLength)
			elapsed := datetime.DaysBetween(in.lmp, in.today)
			out := dueOutput{due: due, daysToDue: datetime.DaysBetween(in.today, due)}
			if elapsed >= 0 && out.daysToDue >= 0 {
				out.pregnant = true
				out.week, out.day = elapsed/7, elapsed%7
			}
			return out
		},
		Present: func(_ *format.Formatter, _ dueInput, out dueOutput) widget.Result {
			var r widget.Result
			r.Headline = "Due date"
			r.Emphasize("Estimated due date", out.due.Format(constants.DateLayout))
			if out.pregnant {
				r.Add("Current stage", fmt.Sprintf("%s, %s",
					format.Plural(out.week, "week", "weeks"), format.Plural(out.day, "day", "days")))
				r.Add("Days to go", fmt.Sprintf("%d", out.daysToDue))
			}
			r.Note("This is an estimate. Only a few babies arrive on their due date.")
			r.Summary = "Estimated due date: " + out.due.Format(constants.DateLayout)
			return r
		},
	}
}
