package expense

import (
	"fmt"
	"time"
)

// Period is a settlement window identified by calendar year and month. It is
// always derived from a date and a closing day, never persisted.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Key formats the period as "YYYY-MM", the canonical map key for per-month
// totals.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Prev returns the previous calendar month with year rollover.
func (p Period) Prev() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// ResolveCurrentPeriod answers which settlement window is currently
// accumulating expenses. With a closing day of 25, an expense dated the 26th
// onward belongs to next month's window; December rolls over into January of
// the following year.
func ResolveCurrentPeriod(today time.Time, closingDay int) Period {
	year, month, day := today.Date()
	if day > closingDay {
		if month == time.December {
			return Period{Year: year + 1, Month: 1}
		}
		return Period{Year: year, Month: int(month) + 1}
	}
	return Period{Year: year, Month: int(month)}
}

// PeriodBounds returns the inclusive YYYY-MM-DD date range covered by the
// period: from the day after the previous month's closing day through the
// period month's closing day. The upper bound always exists because closing
// days are capped at 28; the lower bound goes through time.Date so that a
// day-29 start in February normalizes to March 1.
func PeriodBounds(p Period, closingDay int) (from string, to string) {
	prev := p.Prev()
	start := time.Date(prev.Year, time.Month(prev.Month), closingDay+1, 0, 0, 0, 0, time.UTC)
	from = start.Format("2006-01-02")
	to = fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, closingDay)
	return from, to
}
