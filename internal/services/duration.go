package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"travel-search-service/internal/domain"
)

var (
	durationHours   = regexp.MustCompile(`(\d+)H`)
	durationMinutes = regexp.MustCompile(`(\d+)M`)
)

// ParseISODuration converts an ISO-8601 duration with hour/minute granularity
// ("PT18H5M", "PT45M") into total minutes. Absent, empty, or malformed input
// yields 0: duration parsing must never fail a ranking batch.
func ParseISODuration(d string) int {
	if !strings.HasPrefix(d, "PT") {
		return 0
	}

	total := 0
	if m := durationHours.FindStringSubmatch(d); m != nil {
		hours, _ := strconv.Atoi(m[1])
		total += hours * 60
	}
	if m := durationMinutes.FindStringSubmatch(d); m != nil {
		mins, _ := strconv.Atoi(m[1])
		total += mins
	}

	return total
}

// TotalDurationMinutes sums the parsed itinerary durations of an offer.
func TotalDurationMinutes(offer *domain.Offer) int {
	total := 0
	for _, itin := range offer.Itineraries {
		total += ParseISODuration(itin.Duration)
	}
	return total
}

// CountStops returns the number of connections on the worst-connected
// direction of travel: max over itineraries of segments-1. A direct flight
// (one segment) counts as 0; a degenerate itinerary without segments also
// counts as 0 rather than erroring.
func CountStops(offer *domain.Offer) int {
	stops := 0
	for _, itin := range offer.Itineraries {
		s := len(itin.Segments) - 1
		if s < 0 {
			s = 0
		}
		if s > stops {
			stops = s
		}
	}
	return stops
}

// ToHHMM renders minutes as compact "HhMM" text (75 -> "1h15").
func ToHHMM(mins int) string {
	return fmt.Sprintf("%dh%02d", mins/60, mins%60)
}
