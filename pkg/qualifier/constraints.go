package qualifier

import "github.com/travigo/federation/pkg/ctdf"

type Constraint func(journey *ctdf.Journey) bool

func HasCar(journey *ctdf.Journey) bool {
	return journey.HasFallbackMode(ctdf.StreetNetworkModeCar)
}

func HasNoCar(journey *ctdf.Journey) bool {
	return !HasCar(journey)
}

func HasBike(journey *ctdf.Journey) bool {
	return journey.HasFallbackMode(ctdf.StreetNetworkModeBike)
}

func HasNoBike(journey *ctdf.Journey) bool {
	return !HasBike(journey)
}

func HasWalk(journey *ctdf.Journey) bool {
	return journey.HasFallbackMode(ctdf.StreetNetworkModeWalking)
}

func HasBss(journey *ctdf.Journey) bool {
	return journey.HasSectionType(ctdf.SectionTypeBssRent)
}

func HasNoBss(journey *ctdf.Journey) bool {
	return !HasBss(journey)
}

func HasPT(journey *ctdf.Journey) bool {
	return journey.HasPublicTransport()
}

func NonPTJourney(journey *ctdf.Journey) bool {
	return !journey.HasPublicTransport()
}

func matchAll(journey *ctdf.Journey, constraints []Constraint) bool {
	for _, constraint := range constraints {
		if !constraint(journey) {
			return false
		}
	}
	return true
}
