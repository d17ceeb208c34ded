package journeyfilter

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/travigo/federation/pkg/ctdf"
)

// SignatureGenerator maps a journey to the lazy sequence of tokens describing its shape
type SignatureGenerator func(journey *ctdf.Journey) iter.Seq[string]

type sectionTokens struct {
	publicTransport func(section *ctdf.Section) string
	streetNetwork   func(section *ctdf.Section) string
	crowFly         func(section *ctdf.Section) string
}

func vehicleJourneyToken(section *ctdf.Section) string {
	return "pt:" + section.VehicleJourneyURI()
}

func lineToken(section *ctdf.Section) string {
	return "pt:" + section.LineURI()
}

func streetNetworkToken(section *ctdf.Section) string {
	return "sn:" + string(section.Mode)
}

func crowFlyModeToken(section *ctdf.Section) string {
	return "crow_fly:" + string(section.Mode)
}

func crowFlyToken(*ctdf.Section) string {
	return "crow_fly"
}

// bss and walking share the same mode, only the duration tells them apart
func bssWalkingToken(section *ctdf.Section) string {
	mode := section.Mode
	if mode == ctdf.StreetNetworkModeBss {
		mode = ctdf.StreetNetworkModeWalking
	}
	return fmt.Sprintf("d:%d m:%s", section.Duration, mode)
}

func (t sectionTokens) generator() SignatureGenerator {
	return func(journey *ctdf.Journey) iter.Seq[string] {
		return func(yield func(string) bool) {
			if journey.Tags.Has(ctdf.TagNonPT) {
				tags := strings.Join(journey.Tags, ",")
				for _, section := range journey.Sections {
					if !yield(fmt.Sprintf("sn:%s type:%s tags:%s", section.Mode, section.Type, tags)) {
						return
					}
				}
				return
			}

			for idx, section := range journey.Sections {
				if isWalkAroundTransition(journey, idx) {
					continue
				}

				var token string
				switch {
				case section.Type == ctdf.SectionTypePublicTransport:
					token = t.publicTransport(section)
				case section.Type == ctdf.SectionTypeStreetNetwork:
					token = t.streetNetwork(section)
				case section.Type == ctdf.SectionTypeCrowFly:
					token = t.crowFly(section)
				default:
					continue
				}

				if !yield(token) {
					return
				}
			}
		}
	}
}

var (
	SimilarJourneysVJGenerator = sectionTokens{
		publicTransport: vehicleJourneyToken,
		streetNetwork:   streetNetworkToken,
		crowFly:         crowFlyModeToken,
	}.generator()

	SimilarJourneysLineGenerator = sectionTokens{
		publicTransport: lineToken,
		streetNetwork:   streetNetworkToken,
		crowFly:         crowFlyModeToken,
	}.generator()

	// Every crow fly section is the same here, whatever its mode
	SimilarJourneysLineAndCrowflyGenerator = sectionTokens{
		publicTransport: lineToken,
		streetNetwork:   streetNetworkToken,
		crowFly:         crowFlyToken,
	}.generator()

	SimilarBssWalkingVJGenerator = sectionTokens{
		publicTransport: vehicleJourneyToken,
		streetNetwork:   bssWalkingToken,
		crowFly:         crowFlyModeToken,
	}.generator()
)

// SharedSectionGenerator gives the number of sections first, then the stops of each public transport section
func SharedSectionGenerator(journey *ctdf.Journey) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(strconv.Itoa(len(journey.Sections))) {
			return
		}

		for _, section := range journey.Sections {
			if section.Type != ctdf.SectionTypePublicTransport {
				continue
			}
			if !yield(fmt.Sprintf("origin:%s/dest:%s", section.OriginURI(), section.DestinationURI())) {
				return
			}
		}
	}
}

func isTransitionSection(section *ctdf.Section) bool {
	switch section.Type {
	case ctdf.SectionTypePark, ctdf.SectionTypeLeaveParking, ctdf.SectionTypeBssRent, ctdf.SectionTypeBssPutBack:
		return true
	}
	return false
}

// isWalkAroundTransition is true for a walking section right before or after parking a car or a bss bike
func isWalkAroundTransition(journey *ctdf.Journey, idx int) bool {
	section := journey.Sections[idx]
	if section.Type != ctdf.SectionTypeStreetNetwork || section.Mode != ctdf.StreetNetworkModeWalking {
		return false
	}

	if idx > 0 && isTransitionSection(journey.Sections[idx-1]) {
		return true
	}
	return idx+1 < len(journey.Sections) && isTransitionSection(journey.Sections[idx+1])
}

// Compare is true when any of the generators gives the same sequence for both journeys.
// Sequences are read lazily and the comparison stops at the first different token.
func Compare(j1, j2 *ctdf.Journey, generators ...SignatureGenerator) bool {
	for _, generator := range generators {
		if sameSequence(generator(j1), generator(j2)) {
			return true
		}
	}
	return false
}

func sameSequence(s1, s2 iter.Seq[string]) bool {
	next1, stop1 := iter.Pull(s1)
	defer stop1()
	next2, stop2 := iter.Pull(s2)
	defer stop2()

	for {
		v1, ok1 := next1()
		v2, ok2 := next2()

		if ok1 != ok2 {
			return false
		}
		if !ok1 {
			return true
		}
		if v1 != v2 {
			return false
		}
	}
}
