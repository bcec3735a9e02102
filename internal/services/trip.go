package services

import (
	"errors"
	"fmt"
	"time"

	"travel-search-service/internal/domain"
)

const dateLayout = "2006-01-02"

// ErrDatesUnresolvable reports a query carrying neither exact dates nor a
// usable period. Callers map it to a validation failure.
var ErrDatesUnresolvable = errors.New("departure/return dates or period.start+durationDays required")

// ResolveDates reconciles the two ways a query can express its travel window:
// exact departure/return dates win; otherwise a period is expanded by adding
// its duration to the start date.
func ResolveDates(q *domain.SearchQuery) (dep string, ret string, err error) {
	if q.DepartureDate != "" && q.ReturnDate != "" {
		return q.DepartureDate, q.ReturnDate, nil
	}

	if q.Period != nil {
		start, err := time.Parse(dateLayout, q.Period.Start)
		if err != nil {
			return "", "", fmt.Errorf("resolve dates: parse period start %q: %w", q.Period.Start, err)
		}
		end := start.AddDate(0, 0, q.Period.DurationDays)
		return start.Format(dateLayout), end.Format(dateLayout), nil
	}

	return "", "", ErrDatesUnresolvable
}

// ApplyQueryDefaults fills the gaps the extractor or caller may leave:
// one adult when passengers are absent, and exact dates completed from
// the period.
func ApplyQueryDefaults(q *domain.SearchQuery) {
	if q.Passengers == (domain.Passengers{}) {
		q.Passengers = domain.Passengers{Adults: 1}
	}

	if q.DepartureDate == "" || q.ReturnDate == "" {
		if dep, ret, err := ResolveDates(q); err == nil {
			q.DepartureDate = dep
			q.ReturnDate = ret
		}
	}
}

// DepartureMonth extracts the month number from a YYYY-MM-DD departure date
// for climate lookups.
func DepartureMonth(dep string) (int, error) {
	t, err := time.Parse(dateLayout, dep)
	if err != nil {
		return 0, fmt.Errorf("departure month: parse date %q: %w", dep, err)
	}
	return int(t.Month()), nil
}
