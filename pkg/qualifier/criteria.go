package qualifier

import (
	"iter"

	"github.com/travigo/federation/pkg/ctdf"
)

// Criterion compares two journeys: positive when j1 is better, negative when j2
// is better and 0 when it cannot decide.
type Criterion func(j1, j2 *ctdf.Journey) int

func compareMinus(a, b int64) int {
	switch {
	case b > a:
		return 1
	case b < a:
		return -1
	}
	return 0
}

func TransfersCrit(j1, j2 *ctdf.Journey) int {
	return compareMinus(int64(j1.NbTransfers), int64(j2.NbTransfers))
}

func ArrivalCrit(j1, j2 *ctdf.Journey) int {
	return compareMinus(j1.ArrivalDateTime, j2.ArrivalDateTime)
}

func DepartureCrit(j1, j2 *ctdf.Journey) int {
	return compareMinus(j2.DepartureDateTime, j1.DepartureDateTime)
}

func DurationCrit(j1, j2 *ctdf.Journey) int {
	return compareMinus(j1.Duration, j2.Duration)
}

// NonTCCrit prefers the journey spending less time outside of public transport
func NonTCCrit(j1, j2 *ctdf.Journey) int {
	return compareMinus(NonTransportDuration(j1), NonTransportDuration(j2))
}

// NonTransportDuration sums every section that is not a ride or a wait in a vehicle
func NonTransportDuration(journey *ctdf.Journey) int64 {
	var duration int64
	for _, section := range journey.Sections {
		switch section.Type {
		case ctdf.SectionTypePublicTransport, ctdf.SectionTypeOnDemandTransport,
			ctdf.SectionTypeWaiting, ctdf.SectionTypeBoarding, ctdf.SectionTypeLanding:
			continue
		}
		duration += section.Duration
	}
	return duration
}

// BestCrit is the ASAP criterion of the request direction
func BestCrit(clockwise bool) Criterion {
	if clockwise {
		return ArrivalCrit
	}
	return DepartureCrit
}

// ASAPCriteria orders journeys by the request extremity, then duration, transfers and non transport time
func ASAPCriteria(clockwise bool) []Criterion {
	return []Criterion{BestCrit(clockwise), DurationCrit, TransfersCrit, NonTCCrit}
}

// MinFromCriteria gives the best journey under the ordered criteria, the first one
// seen wins ties. nil when there is no journey.
func MinFromCriteria(journeys iter.Seq[*ctdf.Journey], criteria []Criterion) *ctdf.Journey {
	var best *ctdf.Journey

	for journey := range journeys {
		if best == nil {
			best = journey
			continue
		}

		for _, criterion := range criteria {
			value := criterion(journey, best)
			if value == 0 {
				continue
			}
			if value > 0 {
				best = journey
			}
			break
		}
	}

	return best
}

// Compare chains the criteria, the first decisive one wins
func Compare(j1, j2 *ctdf.Journey, criteria []Criterion) int {
	for _, criterion := range criteria {
		if value := criterion(j1, j2); value != 0 {
			return value
		}
	}
	return 0
}
