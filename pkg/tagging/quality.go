package tagging

import (
	"github.com/travigo/federation/pkg/ctdf"
	"golang.org/x/exp/slices"
)

var ReliablePhysicalModes = []string{
	"physical_mode:RapidTransit",
	"physical_mode:Metro",
	"physical_mode:Train",
	"physical_mode:RailShuttle",
	"physical_mode:LocalTrain",
	"physical_mode:LongDistanceTrain",
}

func isBikeSection(section *ctdf.Section) bool {
	return section.IsStreetNetworkOrCrowFly() && section.Mode == ctdf.StreetNetworkModeBike
}

func isBikeAcceptedPTSection(section *ctdf.Section) bool {
	return section.IsPublicTransport() &&
		section.PTDisplayInformations.HasEquipment(ctdf.EquipmentBikeAccepted) &&
		section.Origin.HasEquipment(ctdf.EquipmentBikeAccepted) &&
		section.Destination.HasEquipment(ctdf.EquipmentBikeAccepted)
}

func isBikeIndifferentSection(section *ctdf.Section) bool {
	switch section.Type {
	case ctdf.SectionTypeBoarding, ctdf.SectionTypeLanding, ctdf.SectionTypeWaiting,
		ctdf.SectionTypeTransfer, ctdf.SectionTypeAlighting:
		return true
	}
	return false
}

// IsBikeInPTJourney is true for a public transport journey that can be done with a bike all along
func IsBikeInPTJourney(journey *ctdf.Journey) bool {
	if !journey.HasPublicTransport() {
		return false
	}

	for _, section := range journey.Sections {
		if !isBikeSection(section) && !isBikeAcceptedPTSection(section) && !isBikeIndifferentSection(section) {
			return false
		}
	}
	return true
}

func TagBikeInPT(journey *ctdf.Journey) {
	if IsBikeInPTJourney(journey) {
		journey.Tags.Add(ctdf.TagBikeInPT)
	}
}

func IsReliableJourney(journey *ctdf.Journey) bool {
	if journey.MostSeriousDisruptionEffect != "" {
		return false
	}

	hasReliablePT := false
	for _, section := range journey.Sections {
		switch {
		case section.Type == ctdf.SectionTypeStreetNetwork:
			if section.Mode != ctdf.StreetNetworkModeBike && section.Mode != ctdf.StreetNetworkModeWalking {
				return false
			}
		case section.IsPublicTransport():
			if !slices.Contains(ReliablePhysicalModes, section.PhysicalModeURI()) {
				return false
			}
			hasReliablePT = true
		}
	}
	return hasReliablePT
}

func TagReliable(journey *ctdf.Journey) {
	if IsReliableJourney(journey) {
		journey.Tags.Add(ctdf.TagReliable)
	}
}

// TagJourneys recomputes the durations and runs every per journey tagger on all the
// journeys, dead ones included
func TagJourneys(responses []*ctdf.Response) {
	for journey := range ctdf.AllJourneys(responses) {
		journey.UpdateDurations()

		TagJourneyByMode(journey)
		TagDirectPath(journey)
		TagBikeInPT(journey)
		TagReliable(journey)
	}
}
