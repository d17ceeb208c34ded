package journeyfilter

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/util"
)

// MarkAsDead flags the journey for the next delete pass. Reasons are only kept in debug.
func MarkAsDead(journey *ctdf.Journey, isDebug bool, reasons ...string) {
	journey.Status = ctdf.JourneyStatusDead

	if isDebug {
		journey.DeletionReasons = append(journey.DeletionReasons, reasons...)
	}
}

func ToBeDeleted(journey *ctdf.Journey) bool {
	return journey.IsDead()
}

// DeleteJourneys physically removes the dead journeys from every response, keeping
// the order of the survivors. Nothing is removed in debug.
func DeleteJourneys(responses []*ctdf.Response, isDebug bool) {
	if isDebug {
		return
	}

	nbDeleted := 0
	for _, response := range responses {
		if response == nil {
			continue
		}

		before := len(response.Journeys)
		util.InPlaceFilter(&response.Journeys, func(journey *ctdf.Journey) bool {
			return !ToBeDeleted(journey)
		})
		nbDeleted += before - len(response.Journeys)
	}

	if nbDeleted > 0 {
		log.Info().Int("deleted", nbDeleted).Msgf("filtering %d journeys", nbDeleted)
	}
}
