package journeyfilter

import (
	"iter"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

// SingleJourneyFilter decides on its own whether a journey is kept
type SingleJourneyFilter interface {
	// Keep returns false when the journey has to be removed
	Keep(journey *ctdf.Journey) bool
	// Message is the snake_case reason recorded on removed journeys
	Message() string
}

// Wrap turns a filter into a keep predicate that marks rejected journeys as dead.
// In debug the predicate always reports the journey as kept.
func Wrap(filter SingleJourneyFilter, isDebug bool) func(*ctdf.Journey) bool {
	return func(journey *ctdf.Journey) bool {
		keep := filter.Keep(journey)
		if !keep {
			log.Debug().
				Str("journey", journey.InternalID).
				Str("reason", filter.Message()).
				Msg("Journey filtered out")
			MarkAsDead(journey, isDebug, filter.Message())
		}

		return keep || isDebug
	}
}

// ApplyFilters runs the filters in order on each journey. A journey stops at the
// first filter reporting it as removed, so in debug every filter sees every journey.
func ApplyFilters(journeys iter.Seq[*ctdf.Journey], filters []SingleJourneyFilter, isDebug bool) {
	wrapped := make([]func(*ctdf.Journey) bool, 0, len(filters))
	for _, filter := range filters {
		wrapped = append(wrapped, Wrap(filter, isDebug))
	}

	for journey := range journeys {
		for _, keep := range wrapped {
			if !keep(journey) {
				break
			}
		}
	}
}

// BuildFilters gives the single journey filters enabled by the request
func BuildFilters(request *ctdf.JourneyRequest, successivePhysicalModeToLimitID string) []SingleJourneyFilter {
	maxWaiting := DefaultMaxWaitingDuration
	if request.MaxWaitingDuration != nil {
		maxWaiting = *request.MaxWaitingDuration
	}

	filters := []SingleJourneyFilter{
		&TooShortHeavyJourneys{
			MinBike:        request.MinBike,
			MinCar:         request.MinCar,
			MinTaxi:        request.MinTaxi,
			MinRidesharing: request.MinRidesharing,
		},
		&TooLongWaiting{MaxWaitingDuration: maxWaiting},
		&MinTransfers{MinNbTransfers: request.MinNbTransfers},
	}

	// 0 switches the limit off
	if request.MaxSuccessivePhysicalMode != nil && *request.MaxSuccessivePhysicalMode != 0 {
		filters = append(filters, &MaxSuccessivePhysicalMode{
			LimitModeID:   successivePhysicalModeToLimitID,
			MaxSuccessive: *request.MaxSuccessivePhysicalMode,
		})
	}

	if directPath := request.GetDirectPath(); directPath != ctdf.DirectPathIndifferent {
		filters = append(filters, &DirectPath{DirectPath: directPath})
	}

	if len(request.DirectPathMode) > 0 {
		filters = append(filters, &DirectPathMode{AllowedModes: request.DirectPathMode})
	}

	filters = append(filters, &TooLongDirectPath{Request: request})

	return filters
}

// FilterJourneys applies the request filters, plus any extra ones, to the qualified journeys
func FilterJourneys(responses []*ctdf.Response, request *ctdf.JourneyRequest, successivePhysicalModeToLimitID string, extra ...SingleJourneyFilter) {
	if request.Debug {
		for journey := range ctdf.QualifiedJourneys(responses) {
			DebugJourney(journey)
		}
	}

	filters := append(BuildFilters(request, successivePhysicalModeToLimitID), extra...)
	ApplyFilters(ctdf.QualifiedJourneys(responses), filters, request.Debug)
}
