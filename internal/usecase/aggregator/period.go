package aggregator

import (
	"time"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// PeriodCutoff returns the earliest date included by period relative to now.
// The boolean is false for PeriodAll and unknown periods, which have no cutoff.
//
// Month arithmetic clamps to the last valid day of the target month:
// 2024-03-31 minus one month is 2024-02-29, not March 2.
func PeriodCutoff(period domain.Period, now time.Time) (domain.Date, bool) {
	today := domain.DateOf(now)
	switch period {
	case domain.PeriodMonth:
		return SubtractMonths(today, 1), true
	case domain.PeriodThreeMonths:
		return SubtractMonths(today, 3), true
	case domain.PeriodYear:
		return SubtractMonths(today, 12), true
	default:
		return domain.Date{}, false
	}
}

// FilterByPeriod returns the transactions dated on or after the period cutoff,
// in their original order. The input slice is not modified.
func FilterByPeriod(txns []domain.Transaction, period domain.Period, now time.Time) []domain.Transaction {
	cutoff, ok := PeriodCutoff(period, now)

	filtered := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if ok && tx.Date.Before(cutoff) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}

// SubtractMonths moves d back n calendar months, keeping the day of month
// where possible and clamping to the month's last day otherwise
func SubtractMonths(d domain.Date, n int) domain.Date {
	total := d.Year()*12 + int(d.Month()) - 1 - n
	year, month := total/12, time.Month(total%12+1)

	day := d.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return domain.NewDate(year, month, day)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
