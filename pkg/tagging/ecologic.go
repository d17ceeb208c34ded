package tagging

import (
	"github.com/travigo/federation/pkg/ctdf"
)

// IsCarDirectPath is true for a journey made only of car and walking street network
// sections around parking, with at least one car section.
func IsCarDirectPath(journey *ctdf.Journey) bool {
	carSeen := false
	for _, section := range journey.Sections {
		switch section.Type {
		case ctdf.SectionTypePark, ctdf.SectionTypeLeaveParking:
			continue
		case ctdf.SectionTypeStreetNetwork:
		default:
			return false
		}

		switch section.Mode {
		case ctdf.StreetNetworkModeCar:
			carSeen = true
		case ctdf.StreetNetworkModeWalking:
		default:
			return false
		}
	}
	return carSeen
}

// ComputeCarCo2Emission takes the co2 emission of the first car direct path as the reference
func ComputeCarCo2Emission(response *ctdf.Response) {
	for _, journey := range response.Journeys {
		if !IsCarDirectPath(journey) {
			continue
		}
		if journey.Co2Emission != nil {
			emission := *journey.Co2Emission
			response.CarCo2Emission = &emission
		}
		return
	}
}

// TagEcologic tags the journeys emitting less than half the car reference
func TagEcologic(response *ctdf.Response) {
	reference := response.CarCo2Emission
	if reference == nil || reference.Value == 0 || reference.Unit == "" {
		return
	}

	for _, journey := range response.Journeys {
		if journey.Co2Emission == nil {
			journey.Tags.Add(ctdf.TagEcologic)
			continue
		}
		if journey.Co2Emission.Unit != reference.Unit {
			continue
		}
		if journey.Co2Emission.Value < reference.Value*0.5 {
			journey.Tags.Add(ctdf.TagEcologic)
		}
	}
}
