package journeyfilter

import (
	"iter"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

// Used when both ends of the journeys are crow fly, lower is better
var crowFlyModeRank = map[ctdf.StreetNetworkMode]int{
	ctdf.StreetNetworkModeCar:     0,
	ctdf.StreetNetworkModeTaxi:    1,
	ctdf.StreetNetworkModeBike:    2,
	ctdf.StreetNetworkModeBss:     3,
	ctdf.StreetNetworkModeWalking: 4,
}

// Used as the last tie break, the journey with the lower rank is the worst
var fallbackModeRank = map[ctdf.StreetNetworkMode]int{
	ctdf.StreetNetworkModeCar:     0,
	ctdf.StreetNetworkModeBike:    1,
	ctdf.StreetNetworkModeWalking: 3,
	ctdf.StreetNetworkModeBss:     4,
}

func FallbackDuration(journey *ctdf.Journey) int64 {
	var duration int64
	for _, section := range journey.Sections {
		if section.IsStreetNetworkOrCrowFly() {
			duration += section.Duration
		}
	}
	return duration
}

// StartEndFallbackDurations splits the fallback duration around the public transport part.
// Without public transport the whole fallback counts on both ends.
func StartEndFallbackDurations(journey *ctdf.Journey) (int64, int64) {
	first, last := -1, -1
	for idx, section := range journey.Sections {
		if section.IsPublicTransport() {
			if first == -1 {
				first = idx
			}
			last = idx
		}
	}

	if first == -1 {
		total := FallbackDuration(journey)
		return total, total
	}

	var start, end int64
	for idx, section := range journey.Sections {
		if !section.IsStreetNetworkOrCrowFly() {
			continue
		}
		if idx < first {
			start += section.Duration
		} else if idx > last {
			end += section.Duration
		}
	}
	return start, end
}

func GetMinWaiting(journey *ctdf.Journey) int64 {
	var minWaiting int64
	found := false
	for _, section := range journey.Sections {
		if section.Type != ctdf.SectionTypeWaiting {
			continue
		}
		if !found || section.Duration < minWaiting {
			minWaiting = section.Duration
			found = true
		}
	}
	return minWaiting
}

func crowFlyRank(mode ctdf.StreetNetworkMode) int {
	if rank, ok := crowFlyModeRank[mode]; ok {
		return rank
	}
	return len(crowFlyModeRank)
}

func isFallbackSection(section *ctdf.Section) bool {
	return section.Type == ctdf.SectionTypeCrowFly || section.Type != ctdf.SectionTypeStreetNetwork
}

// GetWorstSimilar picks which of two similar journeys has to go. It never returns nil
// and when nothing tells them apart j2 is the worst.
func GetWorstSimilar(j1, j2 *ctdf.Journey, clockwise bool) *ctdf.Journey {
	ends := [][2]*ctdf.Section{
		{j1.FirstSection(), j2.FirstSection()},
		{j1.LastSection(), j2.LastSection()},
	}

	for _, end := range ends {
		s1, s2 := end[0], end[1]
		if s1 == nil || s2 == nil {
			continue
		}
		if s1.Type != ctdf.SectionTypeCrowFly || s2.Type != ctdf.SectionTypeCrowFly || s1.Mode == s2.Mode {
			continue
		}
		r1, r2 := crowFlyRank(s1.Mode), crowFlyRank(s2.Mode)
		if r1 != r2 {
			return pick(r1 > r2, j1, j2)
		}
	}

	start1, end1 := StartEndFallbackDurations(j1)
	start2, end2 := StartEndFallbackDurations(j2)
	arrival1, arrival2 := j1.ArrivalDateTime+end1, j2.ArrivalDateTime+end2
	departure1, departure2 := j1.DepartureDateTime-start1, j2.DepartureDateTime-start2

	if clockwise {
		if arrival1 != arrival2 {
			return pick(arrival1 > arrival2, j1, j2)
		}
		if departure1 != departure2 {
			return pick(departure1 < departure2, j1, j2)
		}
	} else {
		if departure1 != departure2 {
			return pick(departure1 < departure2, j1, j2)
		}
		if arrival1 != arrival2 {
			return pick(arrival1 > arrival2, j1, j2)
		}
	}

	if j1.Duration != j2.Duration {
		return pick(j1.Duration > j2.Duration, j1, j2)
	}

	if fallback1, fallback2 := FallbackDuration(j1), FallbackDuration(j2); fallback1 != fallback2 {
		return pick(fallback1 > fallback2, j1, j2)
	}

	if j1.NbTransfers != j2.NbTransfers {
		return pick(j1.NbTransfers > j2.NbTransfers, j1, j2)
	}

	if waiting1, waiting2 := GetMinWaiting(j1), GetMinWaiting(j2); waiting1 != waiting2 {
		return pick(waiting1 < waiting2, j1, j2)
	}

	for _, end := range ends {
		s1, s2 := end[0], end[1]
		if s1 == nil || s2 == nil {
			continue
		}
		if !isFallbackSection(s1) || !isFallbackSection(s2) || s1.Mode == s2.Mode {
			continue
		}
		r1, ok1 := fallbackModeRank[s1.Mode]
		r2, ok2 := fallbackModeRank[s2.Mode]
		if ok1 && ok2 && r1 != r2 {
			return pick(r1 < r2, j1, j2)
		}
	}

	return j2
}

func pick(firstIsWorst bool, j1, j2 *ctdf.Journey) *ctdf.Journey {
	if firstIsWorst {
		return j1
	}
	return j2
}

// FilterSimilarJourneys kills the worst journey of every similar pair. Pairs with an
// already dead journey are skipped.
func FilterSimilarJourneys(pairs iter.Seq2[*ctdf.Journey, *ctdf.Journey], request *ctdf.JourneyRequest, generators ...SignatureGenerator) {
	for j1, j2 := range pairs {
		if j1 == j2 || ToBeDeleted(j1) || ToBeDeleted(j2) {
			continue
		}
		if !Compare(j1, j2, generators...) {
			continue
		}

		worst := GetWorstSimilar(j1, j2, request.Clockwise)
		other := j1
		if worst == j1 {
			other = j2
		}

		log.Debug().
			Str("journey", worst.InternalID).
			Str("similar_to", other.InternalID).
			Msg("Similar journeys, deleting the worst")
		MarkAsDead(worst, request.Debug, "duplicate_journey", "similar_to_"+other.InternalID)
	}
}

func FilterSimilarVJJourneys(pairs iter.Seq2[*ctdf.Journey, *ctdf.Journey], request *ctdf.JourneyRequest) {
	FilterSimilarJourneys(pairs, request, SimilarJourneysVJGenerator, SimilarBssWalkingVJGenerator)
}

func FilterSimilarLineJourneys(pairs iter.Seq2[*ctdf.Journey, *ctdf.Journey], request *ctdf.JourneyRequest) {
	FilterSimilarJourneys(pairs, request, SimilarJourneysLineGenerator)
}

func FilterSimilarLineAndCrowflyJourneys(pairs iter.Seq2[*ctdf.Journey, *ctdf.Journey], request *ctdf.JourneyRequest) {
	FilterSimilarJourneys(pairs, request, SimilarJourneysLineAndCrowflyGenerator)
}

func FilterSharedSectionsJourneys(pairs iter.Seq2[*ctdf.Journey, *ctdf.Journey], request *ctdf.JourneyRequest) {
	FilterSimilarJourneys(pairs, request, SharedSectionGenerator)
}

// Combinations gives every unordered pair of the journeys
func Combinations(journeys []*ctdf.Journey) iter.Seq2[*ctdf.Journey, *ctdf.Journey] {
	return func(yield func(*ctdf.Journey, *ctdf.Journey) bool) {
		for i := range journeys {
			for j := i + 1; j < len(journeys); j++ {
				if !yield(journeys[i], journeys[j]) {
					return
				}
			}
		}
	}
}

// Product pairs each journey of a with each journey of b
func Product(a, b []*ctdf.Journey) iter.Seq2[*ctdf.Journey, *ctdf.Journey] {
	return func(yield func(*ctdf.Journey, *ctdf.Journey) bool) {
		for _, j1 := range a {
			for _, j2 := range b {
				if !yield(j1, j2) {
					return
				}
			}
		}
	}
}
