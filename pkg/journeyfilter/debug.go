package journeyfilter

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

var shortNames = map[string]string{
	string(ctdf.StreetNetworkModeWalking): "W",
	string(ctdf.StreetNetworkModeBike):    "B",
	string(ctdf.StreetNetworkModeCar):     "C",
	string(ctdf.SectionTypeBssRent):       "/",
	string(ctdf.SectionTypeBssPutBack):    "\\",
	string(ctdf.SectionTypePark):          "/",
	string(ctdf.SectionTypeLeaveParking):  "\\",
	string(ctdf.SectionTypeTransfer):      "T",
	string(ctdf.SectionTypeWaiting):       ".",
}

func shorten(name string) string {
	if short, ok := shortNames[name]; ok {
		return short
	}
	return name
}

// JourneySummary is a one line description of the journey sections
func JourneySummary(journey *ctdf.Journey) string {
	sections := make([]string, 0, len(journey.Sections))
	for _, section := range journey.Sections {
		switch section.Type {
		case ctdf.SectionTypePublicTransport, ctdf.SectionTypeOnDemandTransport:
			sections = append(sections, fmt.Sprintf("%s (%s)", section.LineURI(), section.VehicleJourneyURI()))
		case ctdf.SectionTypeStreetNetwork:
			sections = append(sections, shorten(string(section.Mode)))
		default:
			sections = append(sections, shorten(string(section.Type)))
		}
	}
	return strings.Join(sections, " - ")
}

func DebugJourney(journey *ctdf.Journey) {
	log.Debug().
		Str("journey", journey.InternalID).
		Str("departure", time.Unix(journey.DepartureDateTime, 0).UTC().Format("02T15:04:05")).
		Str("arrival", time.Unix(journey.ArrivalDateTime, 0).UTC().Format("02T15:04:05")).
		Str("duration", (time.Duration(journey.Duration) * time.Second).String()).
		Str("fallback", (time.Duration(FallbackDuration(journey)) * time.Second).String()).
		Msg(JourneySummary(journey))
}
