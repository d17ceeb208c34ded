package qualifier

import (
	"iter"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

const (
	TypeBest             = "best"
	TypeRapid            = "rapid"
	TypeComfort          = "comfort"
	TypeCar              = "car"
	TypeLessFallbackWalk = "less_fallback_walk"
	TypeLessFallbackBike = "less_fallback_bike"
	TypeLessFallbackBss  = "less_fallback_bss"
	TypeFastest          = "fastest"
	TypeNonPTWalk        = "non_pt_walk"
	TypeNonPTBike        = "non_pt_bike"
	TypeNonPTBss         = "non_pt_bss"
	TypeNonPTCar         = "non_pt_car"
)

// TripCarac is one typing rule: the best journey matching every constraint,
// under the criteria, gets the rule name as type.
type TripCarac struct {
	Name        string
	Constraints []Constraint
	Criteria    []Criterion
}

// TripCaracs gives the typing rules in evaluation order. A later rule overrides
// the type set by an earlier one.
func TripCaracs(clockwise bool) []TripCarac {
	best := BestCrit(clockwise)

	return []TripCarac{
		{
			Name:        TypeComfort,
			Constraints: []Constraint{HasNoCar},
			Criteria:    []Criterion{TransfersCrit, NonTCCrit, best, DurationCrit},
		},
		{
			// no car only journey here
			Name:        TypeCar,
			Constraints: []Constraint{HasCar, HasPT},
			Criteria:    []Criterion{best, TransfersCrit, NonTCCrit, DurationCrit},
		},
		{
			Name:        TypeLessFallbackWalk,
			Constraints: []Constraint{HasNoCar, HasNoBike},
			Criteria:    []Criterion{NonTCCrit, TransfersCrit, DurationCrit, best},
		},
		{
			Name:        TypeLessFallbackBike,
			Constraints: []Constraint{HasNoCar, HasBike, HasNoBss},
			Criteria:    []Criterion{NonTCCrit, TransfersCrit, DurationCrit, best},
		},
		{
			Name:        TypeLessFallbackBss,
			Constraints: []Constraint{HasNoCar, HasBss},
			Criteria:    []Criterion{NonTCCrit, TransfersCrit, DurationCrit, best},
		},
		{
			Name:        TypeFastest,
			Constraints: []Constraint{HasNoCar},
			Criteria:    []Criterion{DurationCrit, TransfersCrit, NonTCCrit, best},
		},
		{
			Name:        TypeNonPTWalk,
			Constraints: []Constraint{NonPTJourney, HasNoCar, HasWalk},
			Criteria:    []Criterion{best},
		},
		{
			Name:        TypeNonPTBike,
			Constraints: []Constraint{NonPTJourney, HasNoCar, HasBike},
			Criteria:    []Criterion{best},
		},
		{
			Name:        TypeNonPTBss,
			Constraints: []Constraint{NonPTJourney, HasNoCar, HasBss},
			Criteria:    []Criterion{best},
		},
		{
			Name:        TypeNonPTCar,
			Constraints: []Constraint{NonPTJourney, HasCar},
			Criteria:    []Criterion{best},
		},
	}
}

func where(journeys iter.Seq[*ctdf.Journey], constraints []Constraint) iter.Seq[*ctdf.Journey] {
	return func(yield func(*ctdf.Journey) bool) {
		for journey := range journeys {
			if matchAll(journey, constraints) && !yield(journey) {
				return
			}
		}
	}
}

func isPTJourney(journey *ctdf.Journey) bool {
	return !journey.Tags.Has(ctdf.TagNonPT)
}

// BestJourney is the ASAP journey among the ones not tagged non_pt
func BestJourney(journeys iter.Seq[*ctdf.Journey], clockwise bool) *ctdf.Journey {
	return MinFromCriteria(where(journeys, []Constraint{isPTJourney}), ASAPCriteria(clockwise))
}

// TypeJourneys sets the type of every qualified journey of the response
func TypeJourneys(response *ctdf.Response, clockwise bool) {
	responses := []*ctdf.Response{response}

	for journey := range ctdf.QualifiedJourneys(responses) {
		journey.Type = TypeRapid
	}

	for _, carac := range TripCaracs(clockwise) {
		best := MinFromCriteria(where(ctdf.QualifiedJourneys(responses), carac.Constraints), carac.Criteria)
		if best != nil {
			best.Type = carac.Name
		}
	}

	best := BestJourney(ctdf.QualifiedJourneys(responses), clockwise)
	if best != nil {
		log.Debug().Str("journey", best.InternalID).Msg("Best journey")
		best.Type = TypeBest
	}
}
