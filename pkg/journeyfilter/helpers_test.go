package journeyfilter

import (
	"github.com/travigo/federation/pkg/ctdf"
)

func walking(duration int64) *ctdf.Section {
	return &ctdf.Section{Type: ctdf.SectionTypeStreetNetwork, Mode: ctdf.StreetNetworkModeWalking, Duration: duration}
}

func streetNetwork(mode ctdf.StreetNetworkMode, duration int64) *ctdf.Section {
	return &ctdf.Section{Type: ctdf.SectionTypeStreetNetwork, Mode: mode, Duration: duration}
}

func crowFly(mode ctdf.StreetNetworkMode, duration int64) *ctdf.Section {
	return &ctdf.Section{Type: ctdf.SectionTypeCrowFly, Mode: mode, Duration: duration}
}

func section(sectionType ctdf.SectionType, duration int64) *ctdf.Section {
	return &ctdf.Section{Type: sectionType, Duration: duration}
}

func publicTransport(line string, vehicleJourney string, duration int64) *ctdf.Section {
	return &ctdf.Section{
		Type:        ctdf.SectionTypePublicTransport,
		Duration:    duration,
		Origin:      &ctdf.Place{URI: "stop_point:" + line + ":from"},
		Destination: &ctdf.Place{URI: "stop_point:" + line + ":to"},
		PTDisplayInformations: &ctdf.PTDisplayInformations{
			Uris: ctdf.PTUris{Line: line, VehicleJourney: vehicleJourney, PhysicalMode: "physical_mode:Bus"},
		},
	}
}

func journey(id string, sections ...*ctdf.Section) *ctdf.Journey {
	j := &ctdf.Journey{InternalID: id, Sections: sections}
	for _, s := range sections {
		j.Duration += s.Duration
	}
	j.UpdateDurations()
	return j
}

func response(journeys ...*ctdf.Journey) *ctdf.Response {
	return &ctdf.Response{Journeys: journeys}
}

func ptr[T any](value T) *T {
	return &value
}
