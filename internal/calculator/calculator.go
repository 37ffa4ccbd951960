// Package calculator sums dividend series over trailing windows ending now.
package calculator

import (
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/b3proventos/internal/domain/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedRecord is matched by every *MalformedRecordError.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidWindow is returned for negative window lengths.
	ErrInvalidWindow = errors.New("invalid window")
)

// MalformedRecordError reports a record that cannot take part in a sum.
type MalformedRecordError struct {
	Index  int    // position in the input slice
	Field  string // offending field
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record #%d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// Calculator binds the window sums to a clock.
type Calculator struct {
	now func() time.Time
}

// New returns a Calculator using the wall clock.
func New() *Calculator {
	return &Calculator{now: time.Now}
}

// NewWithClock returns a Calculator reading the reference instant from now.
func NewWithClock(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// AccumulatedYearly is SumYearly evaluated at the current instant.
func (c *Calculator) AccumulatedYearly(records []models.YearlyDividend, years int) (decimal.Decimal, error) {
	return SumYearly(records, years, c.now())
}

// AccumulatedMonthly is SumMonthly evaluated at the current instant.
func (c *Calculator) AccumulatedMonthly(records []models.MonthlyDividend, months int) (decimal.Decimal, error) {
	return SumMonthly(records, months, c.now())
}

// CheckWindow rejects negative window lengths with ErrInvalidWindow.
func CheckWindow(name string, length int) error {
	if length < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidWindow, name, length)
	}
	return nil
}

// SumYearly adds the amounts of every record with
// now.Year()-years <= Year <= now.Year().
//
// A record without a year (zero) fails the whole sum.
func SumYearly(records []models.YearlyDividend, years int, now time.Time) (decimal.Decimal, error) {
	if err := CheckWindow("years", years); err != nil {
		return decimal.Zero, err
	}
	current := now.Year()
	cutoff := current - years

	total := decimal.Zero
	for i, r := range records {
		if r.Year == 0 {
			return decimal.Zero, &MalformedRecordError{Index: i, Field: "year", Reason: "missing"}
		}
		if r.Year >= cutoff && r.Year <= current {
			total = total.Add(r.Amount)
		}
	}
	return total, nil
}

// SumMonthly adds the amounts of every record whose ex-date falls in
// [CutoffDate(now, months), now], compared by calendar day.
//
// Records without an ex-date are skipped. A record whose ex-date is not
// an ISO date fails the whole sum.
func SumMonthly(records []models.MonthlyDividend, months int, now time.Time) (decimal.Decimal, error) {
	if err := CheckWindow("months", months); err != nil {
		return decimal.Zero, err
	}
	cutoff := CutoffDate(now, months)
	today := truncateToDate(now)

	total := decimal.Zero
	for i, r := range records {
		if r.ExDate == nil {
			continue
		}
		exDate, err := time.ParseInLocation(models.ISODateLayout, *r.ExDate, now.Location())
		if err != nil {
			return decimal.Zero, &MalformedRecordError{Index: i, Field: "ex_date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", *r.ExDate)}
		}
		if !exDate.Before(cutoff) && !exDate.After(today) {
			total = total.Add(r.Amount)
		}
	}
	return total, nil
}

// CutoffDate returns the calendar day `months` months before now. The day
// of month is kept unless the target month is shorter, in which case the
// last day of that month is used (2024-03-31 minus 1 month = 2024-02-29).
func CutoffDate(now time.Time, months int) time.Time {
	total := now.Year()*12 + int(now.Month()) - 1 - months
	year := floorDiv(total, 12)
	month := time.Month(total - year*12 + 1)
	day := min(now.Day(), daysIn(year, month))
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
