package qualifier

import (
	"github.com/travigo/federation/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const (
	JourneyOrderArrivalTime   = "arrival_time"
	JourneyOrderDepartureTime = "departure_time"
)

func arrivalTimeCriteria(clockwise bool) []Criterion {
	if clockwise {
		return []Criterion{ArrivalCrit, DurationCrit, TransfersCrit, NonTCCrit}
	}
	return []Criterion{DepartureCrit, DurationCrit, TransfersCrit, NonTCCrit}
}

func departureTimeCriteria(clockwise bool) []Criterion {
	if clockwise {
		return []Criterion{
			func(j1, j2 *ctdf.Journey) int { return compareMinus(j1.DepartureDateTime, j2.DepartureDateTime) },
			DurationCrit, TransfersCrit, NonTCCrit,
		}
	}
	return []Criterion{
		func(j1, j2 *ctdf.Journey) int { return compareMinus(j2.ArrivalDateTime, j1.ArrivalDateTime) },
		DurationCrit, TransfersCrit, NonTCCrit,
	}
}

// SortJourneys orders the response journeys, best first. Unknown orders fall back to arrival_time.
func SortJourneys(response *ctdf.Response, order string, clockwise bool) {
	criteria := arrivalTimeCriteria(clockwise)
	if order == JourneyOrderDepartureTime {
		criteria = departureTimeCriteria(clockwise)
	}

	slices.SortStableFunc(response.Journeys, func(a, b *ctdf.Journey) int {
		// criteria are positive when the first journey is the better one
		return -Compare(a, b, criteria)
	})
}
