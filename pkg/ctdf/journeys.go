package ctdf

import "iter"

// AllJourneys gives every journey of the non nil responses, in order.
// The returned sequence can be ranged over any number of times, each pass reads
// the responses again.
func AllJourneys(responses []*Response) iter.Seq[*Journey] {
	return func(yield func(*Journey) bool) {
		for _, response := range responses {
			if response == nil {
				continue
			}
			for _, journey := range response.Journeys {
				if !yield(journey) {
					return
				}
			}
		}
	}
}

// QualifiedJourneys is AllJourneys without the dead journeys. The predicate is
// evaluated lazily, so journeys killed while ranging are skipped by later steps.
func QualifiedJourneys(responses []*Response) iter.Seq[*Journey] {
	return func(yield func(*Journey) bool) {
		for journey := range AllJourneys(responses) {
			if journey.IsDead() {
				continue
			}
			if !yield(journey) {
				return
			}
		}
	}
}

func CountQualifiedJourneys(responses []*Response) int {
	count := 0
	for range QualifiedJourneys(responses) {
		count++
	}
	return count
}

func Collect(journeys iter.Seq[*Journey]) []*Journey {
	var collected []*Journey
	for journey := range journeys {
		collected = append(collected, journey)
	}
	return collected
}
