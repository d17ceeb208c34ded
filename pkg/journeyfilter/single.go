package journeyfilter

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

const DefaultMaxWaitingDuration int64 = 4 * 60 * 60

// TooShortHeavyJourneys removes journeys using a heavy fallback mode for too little time.
// A nil threshold disables the check for its mode.
type TooShortHeavyJourneys struct {
	MinBike        *int64
	MinCar         *int64
	MinTaxi        *int64
	MinRidesharing *int64
}

func (f *TooShortHeavyJourneys) Message() string {
	return "too_short_heavy_mode_fallback"
}

func (f *TooShortHeavyJourneys) Keep(journey *ctdf.Journey) bool {
	if isBikeDirectPath(journey) {
		return true
	}

	onBss := false
	for _, section := range journey.Sections {
		switch section.Type {
		case ctdf.SectionTypeBssRent:
			onBss = true
			continue
		case ctdf.SectionTypeBssPutBack:
			onBss = false
			continue
		case ctdf.SectionTypeStreetNetwork:
		default:
			continue
		}

		if onBss {
			continue
		}

		threshold, total := f.thresholdFor(journey, section.Mode)
		if threshold != nil && total < *threshold {
			return false
		}
	}

	return true
}

func (f *TooShortHeavyJourneys) thresholdFor(journey *ctdf.Journey, mode ctdf.StreetNetworkMode) (*int64, int64) {
	switch mode {
	case ctdf.StreetNetworkModeCar:
		return f.MinCar, journey.Durations.Car
	case ctdf.StreetNetworkModeTaxi:
		return f.MinTaxi, journey.Durations.Taxi
	case ctdf.StreetNetworkModeRidesharing:
		return f.MinRidesharing, journey.Durations.Ridesharing
	case ctdf.StreetNetworkModeBike:
		return f.MinBike, journey.Durations.Bike
	}
	return nil, 0
}

func isBikeDirectPath(journey *ctdf.Journey) bool {
	return len(journey.Sections) == 1 &&
		journey.Sections[0].Type == ctdf.SectionTypeStreetNetwork &&
		journey.Sections[0].Mode == ctdf.StreetNetworkModeBike
}

type TooLongWaiting struct {
	MaxWaitingDuration int64
}

func (f *TooLongWaiting) Message() string {
	return "too_long_waiting"
}

func (f *TooLongWaiting) Keep(journey *ctdf.Journey) bool {
	// no transfer means no waiting section
	if journey.NbTransfers == 0 {
		return true
	}
	if journey.Duration < f.MaxWaitingDuration {
		return true
	}

	for _, section := range journey.Sections {
		if section.Type == ctdf.SectionTypeWaiting && section.Duration >= f.MaxWaitingDuration {
			return false
		}
	}
	return true
}

// MaxSuccessivePhysicalMode limits the number of successive public transport sections
// using the given physical mode.
type MaxSuccessivePhysicalMode struct {
	LimitModeID   string
	MaxSuccessive int
}

func (f *MaxSuccessivePhysicalMode) Message() string {
	return "too_much_successive_physical_mode"
}

func (f *MaxSuccessivePhysicalMode) Keep(journey *ctdf.Journey) bool {
	count := 0
	for _, section := range journey.Sections {
		if section.Type != ctdf.SectionTypePublicTransport {
			continue
		}

		if section.PhysicalModeURI() == f.LimitModeID {
			count++
		} else if count <= f.MaxSuccessive {
			// once exceeded the streak is never reset
			count = 0
		}
	}

	return count <= f.MaxSuccessive
}

type MinTransfers struct {
	MinNbTransfers int
}

func (f *MinTransfers) Message() string {
	return "not_enough_connections"
}

func (f *MinTransfers) Keep(journey *ctdf.Journey) bool {
	return journey.NbTransfers >= f.MinNbTransfers
}

type DirectPath struct {
	DirectPath string
}

func (f *DirectPath) Message() string {
	return "direct_path"
}

func (f *DirectPath) Keep(journey *ctdf.Journey) bool {
	switch f.DirectPath {
	case ctdf.DirectPathNone:
		return !journey.Tags.Has(ctdf.TagNonPT)
	case ctdf.DirectPathOnly, ctdf.DirectPathOnlyWithAlternatives:
		return journey.Tags.Has(ctdf.TagNonPT)
	}
	return true
}

type DirectPathMode struct {
	AllowedModes []string
}

func (f *DirectPathMode) Message() string {
	return "direct_path_mode"
}

func (f *DirectPathMode) Keep(journey *ctdf.Journey) bool {
	if !journey.Tags.Has(ctdf.TagNonPT) {
		return true
	}
	return len(journey.Tags.Intersect(f.AllowedModes)) > 0
}

// TooLongDirectPath applies the per mode max_<mode>_direct_path_duration of the request
type TooLongDirectPath struct {
	Request *ctdf.JourneyRequest
}

func (f *TooLongDirectPath) Message() string {
	return "too_long_direct_path"
}

func (f *TooLongDirectPath) Keep(journey *ctdf.Journey) bool {
	if !journey.Tags.Has(ctdf.TagNonPT) {
		return true
	}

	modes := journey.Tags.Intersect(ctdf.FallbackModeTags)
	if len(modes) != 1 {
		log.Error().
			Str("journey", journey.InternalID).
			Strs("modes", modes).
			Msg("Cannot determine the direct path mode")
		return true
	}

	maxDuration, ok := f.Request.MaxDirectPathDuration(modes[0])
	if !ok {
		return true
	}
	return journey.Duration < maxDuration
}
