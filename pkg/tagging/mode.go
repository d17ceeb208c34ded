package tagging

import (
	"github.com/travigo/federation/pkg/ctdf"
)

// DefaultModeWeights ranks the fallback modes, the heaviest mode of a journey gives its tag
var DefaultModeWeights = map[string]int{
	ctdf.TagWalking:     1,
	ctdf.TagBss:         2,
	ctdf.TagBike:        3,
	ctdf.TagCarNoPark:   4,
	ctdf.TagRidesharing: 4,
	ctdf.TagTaxi:        4,
	ctdf.TagCar:         5,
}

// ModeWeight is the weight of the heaviest fallback mode tag of the journey, 1 without any
func ModeWeight(journey *ctdf.Journey) int {
	weight := 1
	for _, tag := range journey.Tags {
		if w, ok := DefaultModeWeights[tag]; ok && w > weight {
			weight = w
		}
	}
	return weight
}

func sectionMode(journey *ctdf.Journey, idx int) string {
	section := journey.Sections[idx]

	switch section.Type {
	case ctdf.SectionTypeBssRent:
		return ctdf.TagBss
	case ctdf.SectionTypeRidesharing:
		return ctdf.TagRidesharing
	case ctdf.SectionTypeStreetNetwork, ctdf.SectionTypeCrowFly:
	default:
		return ctdf.TagWalking
	}

	switch section.Mode {
	case ctdf.StreetNetworkModeBss:
		return ctdf.TagBss
	case ctdf.StreetNetworkModeBike:
		// riding a rented bike
		if idx > 0 && journey.Sections[idx-1].Type == ctdf.SectionTypeBssRent {
			return ctdf.TagBss
		}
		return ctdf.TagBike
	case ctdf.StreetNetworkModeCar:
		return ctdf.TagCar
	case ctdf.StreetNetworkModeCarNoPark:
		return ctdf.TagCarNoPark
	case ctdf.StreetNetworkModeRidesharing:
		return ctdf.TagRidesharing
	case ctdf.StreetNetworkModeTaxi:
		return ctdf.TagTaxi
	}
	return ctdf.TagWalking
}

// TagJourneyByMode adds the heaviest fallback mode used by the journey as a tag
func TagJourneyByMode(journey *ctdf.Journey) {
	mode := ctdf.TagWalking
	for idx := range journey.Sections {
		current := sectionMode(journey, idx)
		if DefaultModeWeights[current] > DefaultModeWeights[mode] {
			mode = current
		}
	}

	journey.Tags.Add(mode)
}

var directPathModeTags = map[ctdf.StreetNetworkMode]string{
	ctdf.StreetNetworkModeWalking:     ctdf.TagNonPTWalking,
	ctdf.StreetNetworkModeBike:        ctdf.TagNonPTBike,
	ctdf.StreetNetworkModeTaxi:        ctdf.TagNonPTTaxi,
	ctdf.StreetNetworkModeCar:         ctdf.TagNonPTCar,
	ctdf.StreetNetworkModeCarNoPark:   ctdf.TagNonPTCarNoPark,
	ctdf.StreetNetworkModeRidesharing: ctdf.TagNonPTRidesharing,
}

func TagDirectPath(journey *ctdf.Journey) {
	if journey.HasPublicTransport() {
		return
	}
	journey.Tags.Add(ctdf.TagNonPT)

	if len(journey.Sections) != 1 || journey.Sections[0].Type != ctdf.SectionTypeStreetNetwork {
		return
	}
	if tag, ok := directPathModeTags[journey.Sections[0].Mode]; ok {
		journey.Tags.Add(tag)
	}
}
