package journeyfilter

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/qualifier"
	"github.com/travigo/federation/pkg/tagging"
	"golang.org/x/exp/slices"
)

const DefaultMaxAdditionalConnections = 2

// ApplyFinalJourneyFilters runs the passes made once every compute call is done.
// Each pass only looks at the journeys still qualified.
func ApplyFinalJourneyFilters(responses []*ctdf.Response, request *ctdf.JourneyRequest) {
	if request.FinalLineFilter {
		FilterSimilarLineJourneys(Combinations(ctdf.Collect(ctdf.QualifiedJourneys(responses))), request)
	}

	if request.NoSharedSection {
		FilterSharedSectionsJourneys(Combinations(ctdf.Collect(ctdf.QualifiedJourneys(responses))), request)
	}

	if request.FilterODTJourneys {
		FilterODTJourneys(responses, request)
	}

	FilterTooMuchConnections(responses, request)

	if request.NightBusFilterMaxFactor != nil && request.NightBusFilterBaseFactor != nil {
		FilterTooLateJourneys(responses, request)
	}

	if len(request.OriginMode) == 1 && request.OriginMode[0] == ctdf.TagCar {
		FilterNonCarTaggedJourneys(responses, request)
	}
}

// FilterTooMuchConnections kills the journeys with more connections than the best
// public transport journey allows.
func FilterTooMuchConnections(responses []*ctdf.Response, request *ctdf.JourneyRequest) {
	best := qualifier.BestJourney(ctdf.QualifiedJourneys(responses), request.Clockwise)
	if best == nil {
		return
	}

	maxAdditional := DefaultMaxAdditionalConnections
	if request.MaxAdditionalConnections != nil {
		maxAdditional = *request.MaxAdditionalConnections
	}
	maxAllowed := best.NbTransfers + maxAdditional

	for journey := range ctdf.QualifiedJourneys(responses) {
		if journey.NbTransfers > maxAllowed {
			log.Debug().
				Str("journey", journey.InternalID).
				Int("connections", journey.NbTransfers).
				Int("allowed", maxAllowed).
				Msg("Journey has too much connections")
			MarkAsDead(journey, request.Debug, "too_much_connections")
		}
	}
}

func isODTJourney(journey *ctdf.Journey) bool {
	return slices.IndexFunc(journey.Sections, (*ctdf.Section).IsODT) != -1
}

// FilterODTJourneys kills the on demand journeys that do not beat the best regular
// public transport journey.
func FilterODTJourneys(responses []*ctdf.Response, request *ctdf.JourneyRequest) {
	var reference *ctdf.Journey
	for journey := range ctdf.QualifiedJourneys(responses) {
		if !journey.HasPublicTransport() || isODTJourney(journey) {
			continue
		}

		switch {
		case reference == nil:
			reference = journey
		case request.Clockwise && journey.ArrivalDateTime < reference.ArrivalDateTime:
			reference = journey
		case !request.Clockwise && journey.DepartureDateTime > reference.DepartureDateTime:
			reference = journey
		}
	}

	if reference == nil {
		return
	}

	for journey := range ctdf.QualifiedJourneys(responses) {
		if !isODTJourney(journey) {
			continue
		}

		if request.Clockwise && journey.ArrivalDateTime >= reference.ArrivalDateTime {
			MarkAsDead(journey, request.Debug, "odt_arrives_after_"+reference.InternalID)
		} else if !request.Clockwise && journey.DepartureDateTime <= reference.DepartureDateTime {
			MarkAsDead(journey, request.Debug, "odt_departs_before_"+reference.InternalID)
		}
	}
}

func FilterNonCarTaggedJourneys(responses []*ctdf.Response, request *ctdf.JourneyRequest) {
	for journey := range ctdf.QualifiedJourneys(responses) {
		if !journey.Tags.Has(ctdf.TagCar) {
			MarkAsDead(journey, request.Debug, "non_car_tagged_journey_filtered")
		}
	}
}

// wayLater is true when j1 ends way after j2 relative to the requested datetime,
// unless j1 uses a lighter fallback mode.
func wayLater(request *ctdf.JourneyRequest, j1, j2 *ctdf.Journey) bool {
	if tagging.ModeWeight(j1) < tagging.ModeWeight(j2) {
		return false
	}

	pseudo1 := j1.PseudoDuration(request.Datetime, request.Clockwise)
	pseudo2 := j2.PseudoDuration(request.Datetime, request.Clockwise)

	maxValue := float64(pseudo2)*(*request.NightBusFilterMaxFactor) + float64(*request.NightBusFilterBaseFactor)
	return float64(pseudo1) > maxValue
}

// FilterTooLateJourneys kills the public transport journeys ending way later than another one
func FilterTooLateJourneys(responses []*ctdf.Response, request *ctdf.JourneyRequest) {
	var journeys []*ctdf.Journey
	for journey := range ctdf.QualifiedJourneys(responses) {
		if !journey.Tags.Has(ctdf.TagNonPT) {
			journeys = append(journeys, journey)
		}
	}

	for _, j1 := range journeys {
		for _, j2 := range journeys {
			if j1 == j2 || ToBeDeleted(j1) || ToBeDeleted(j2) {
				continue
			}
			if wayLater(request, j1, j2) {
				log.Debug().
					Str("journey", j1.InternalID).
					Str("compared_to", j2.InternalID).
					Msg("Journey is too late compared to another")
				MarkAsDead(j1, request.Debug, "too_late", "too_late_compared_to_"+j2.InternalID)
			}
		}
	}
}
