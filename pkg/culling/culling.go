package culling

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/journeyfilter"
	"github.com/travigo/federation/pkg/qualifier"
	"golang.org/x/exp/slices"
)

const (
	DefaultMaxCombinations = 100000

	reason = "filtered_by_max_nb_journeys"
)

// DefaultProtectedTypes are always kept, in priority order when the budget is too small for all of them
var DefaultProtectedTypes = []string{
	qualifier.TypeBest,
	qualifier.TypeComfort,
	qualifier.TypeNonPTWalk,
	qualifier.TypeNonPTBike,
	qualifier.TypeNonPTBss,
}

var retainedSectionTypes = []ctdf.SectionType{
	ctdf.SectionTypePublicTransport,
	ctdf.SectionTypeOnDemandTransport,
	ctdf.SectionTypeStreetNetwork,
}

var retainedStreetNetworkModes = []ctdf.StreetNetworkMode{
	ctdf.StreetNetworkModeCar,
	ctdf.StreetNetworkModeBike,
	ctdf.StreetNetworkModeBss,
}

// Culler bounds the number of journeys of a response to max_nb_journeys while
// keeping as many different sections as possible.
type Culler struct {
	ProtectedTypes []string
	ProtectedTags  []string

	// Above this number of combinations the selection is greedy
	MaxCombinations int
}

func NewCuller() *Culler {
	return &Culler{
		ProtectedTypes:  DefaultProtectedTypes,
		MaxCombinations: DefaultMaxCombinations,
	}
}

type candidate struct {
	journey    *ctdf.Journey
	sectionIDs []string
	mustKeep   bool
}

func sectionID(section *ctdf.Section) string {
	mode := ""
	if slices.Contains(retainedStreetNetworkModes, section.Mode) {
		mode = string(section.Mode)
	}
	return section.LineURI() + "|" + mode + "|" + string(section.Type)
}

func retainedSectionIDs(journey *ctdf.Journey) []string {
	var ids []string
	for _, section := range journey.Sections {
		if slices.Contains(retainedSectionTypes, section.Type) {
			ids = append(ids, sectionID(section))
		}
	}
	return ids
}

func (c *Culler) mustKeep(journey *ctdf.Journey) bool {
	return slices.Contains(c.ProtectedTypes, journey.Type) || len(journey.Tags.Intersect(c.ProtectedTags)) > 0
}

// priority of a journey to keep, lower first
func (c *Culler) priority(journey *ctdf.Journey) int {
	if len(journey.Tags.Intersect(c.ProtectedTags)) > 0 {
		return 0
	}
	if idx := slices.Index(c.ProtectedTypes, journey.Type); idx != -1 {
		return idx + 1
	}
	return len(c.ProtectedTypes) + 1
}

// aggregate keeps one journey per distinct list of sections. Journeys to keep are
// never aggregated away.
func (c *Culler) aggregate(journeys []*ctdf.Journey) ([]*candidate, []*ctdf.Journey) {
	var aggregated []*candidate
	var remaining []*ctdf.Journey
	seen := map[string]bool{}

	for _, journey := range journeys {
		ids := retainedSectionIDs(journey)
		key := strings.Join(ids, ";")
		must := c.mustKeep(journey)

		if !must && seen[key] {
			remaining = append(remaining, journey)
			continue
		}

		seen[key] = true
		aggregated = append(aggregated, &candidate{journey: journey, sectionIDs: ids, mustKeep: must})
	}

	return aggregated, remaining
}

func kill(journeys []*ctdf.Journey, isDebug bool) {
	for _, journey := range journeys {
		log.Debug().Str("journey", journey.InternalID).Msg("Journey culled")
		journeyfilter.MarkAsDead(journey, isDebug, reason)
	}
}

// CullJourneys removes journeys until at most max_nb_journeys qualified journeys are left.
// The response journeys are expected to be sorted already.
func (c *Culler) CullJourneys(response *ctdf.Response, request *ctdf.JourneyRequest) {
	if request.MaxNbJourneys == nil {
		return
	}
	maxNbJourneys := *request.MaxNbJourneys
	responses := []*ctdf.Response{response}

	aggregated, remaining := c.aggregate(ctdf.Collect(ctdf.QualifiedJourneys(responses)))
	kill(remaining, request.Debug)

	if maxNbJourneys >= len(aggregated) {
		log.Debug().Int("journeys", len(aggregated)).Msg("No need to cull journeys")
		journeyfilter.DeleteJourneys(responses, request.Debug)
		return
	}

	var mustKeep []*candidate
	for _, entry := range aggregated {
		if entry.mustKeep {
			mustKeep = append(mustKeep, entry)
		}
	}
	log.Debug().Int("must_keep", len(mustKeep)).Int("max_nb_journeys", maxNbJourneys).Msg("Culling journeys")

	if maxNbJourneys <= len(mustKeep) {
		c.keepMustHaves(aggregated, mustKeep, maxNbJourneys, request.Debug)
	} else {
		selected := c.selectCandidates(aggregated, maxNbJourneys, request)

		var culled []*ctdf.Journey
		for idx, entry := range aggregated {
			if !selected[idx] {
				culled = append(culled, entry.journey)
			}
		}
		kill(culled, request.Debug)
	}

	journeyfilter.DeleteJourneys(responses, request.Debug)
}

func (c *Culler) keepMustHaves(aggregated []*candidate, mustKeep []*candidate, maxNbJourneys int, isDebug bool) {
	var culled []*ctdf.Journey
	for _, entry := range aggregated {
		if !entry.mustKeep {
			culled = append(culled, entry.journey)
		}
	}

	sorted := slices.Clone(mustKeep)
	slices.SortStableFunc(sorted, func(a, b *candidate) int {
		return c.priority(a.journey) - c.priority(b.journey)
	})
	for _, entry := range sorted[maxNbJourneys:] {
		culled = append(culled, entry.journey)
	}

	kill(culled, isDebug)
}

type score struct {
	integrity      int
	nbSections     int
	pseudoDuration int64
}

func (s score) less(other score) bool {
	if s.integrity != other.integrity {
		return s.integrity < other.integrity
	}
	if s.nbSections != other.nbSections {
		return s.nbSections < other.nbSections
	}
	return s.pseudoDuration < other.pseudoDuration
}

// incidence gives for each candidate the distinct indexes of its section ids
func incidence(aggregated []*candidate) ([][]int, int) {
	index := map[string]int{}
	rows := make([][]int, len(aggregated))

	for i, entry := range aggregated {
		inRow := map[int]bool{}
		for _, id := range entry.sectionIDs {
			column, ok := index[id]
			if !ok {
				column = len(index)
				index[id] = column
			}
			if !inRow[column] {
				inRow[column] = true
				rows[i] = append(rows[i], column)
			}
		}
	}

	return rows, len(index)
}

// selectCandidates picks maxNbJourneys candidates, every must keep included, covering
// as many section ids as possible with the fewest sections.
func (c *Culler) selectCandidates(aggregated []*candidate, maxNbJourneys int, request *ctdf.JourneyRequest) []bool {
	rows, nbColumns := incidence(aggregated)

	var mustIdx, freeIdx []int
	for idx, entry := range aggregated {
		if entry.mustKeep {
			mustIdx = append(mustIdx, idx)
		} else {
			freeIdx = append(freeIdx, idx)
		}
	}
	toChoose := maxNbJourneys - len(mustIdx)

	maxCombinations := c.MaxCombinations
	if maxCombinations <= 0 {
		maxCombinations = DefaultMaxCombinations
	}

	if Binomial(len(freeIdx), toChoose, maxCombinations) > maxCombinations {
		log.Warn().
			Int("candidates", len(aggregated)).
			Int("max_nb_journeys", maxNbJourneys).
			Msg("Too many combinations, using greedy culling")
		return c.greedySelection(aggregated, rows, mustIdx, freeIdx, toChoose, request)
	}

	scoreOf := func(selection []int) score {
		covered := make([]bool, nbColumns)
		s := score{integrity: nbColumns}
		for _, idx := range selection {
			for _, column := range rows[idx] {
				s.nbSections++
				if !covered[column] {
					covered[column] = true
					s.integrity--
				}
			}
			s.pseudoDuration += aggregated[idx].journey.PseudoDuration(request.Datetime, request.Clockwise)
		}
		return s
	}

	var best []int
	var bestScore score
	selection := make([]int, 0, maxNbJourneys)

	for combination := range Combinations(len(freeIdx), toChoose) {
		selection = append(selection[:0], mustIdx...)
		for _, i := range combination {
			selection = append(selection, freeIdx[i])
		}

		s := scoreOf(selection)
		if best == nil || s.less(bestScore) {
			best = slices.Clone(selection)
			bestScore = s
		}
	}

	log.Debug().Int("integrity", bestScore.integrity).Int("nb_sections", bestScore.nbSections).Msg("Best culling combination")

	selected := make([]bool, len(aggregated))
	for _, idx := range best {
		selected[idx] = true
	}
	return selected
}

// greedySelection adds one candidate at a time, the one covering the most new section ids
func (c *Culler) greedySelection(aggregated []*candidate, rows [][]int, mustIdx []int, freeIdx []int, toChoose int, request *ctdf.JourneyRequest) []bool {
	selected := make([]bool, len(aggregated))
	covered := map[int]bool{}

	add := func(idx int) {
		selected[idx] = true
		for _, column := range rows[idx] {
			covered[column] = true
		}
	}
	for _, idx := range mustIdx {
		add(idx)
	}

	for n := 0; n < toChoose; n++ {
		bestIdx := -1
		var bestNew, bestSections int
		var bestPseudo int64

		for _, idx := range freeIdx {
			if selected[idx] {
				continue
			}

			newColumns := 0
			for _, column := range rows[idx] {
				if !covered[column] {
					newColumns++
				}
			}
			pseudo := aggregated[idx].journey.PseudoDuration(request.Datetime, request.Clockwise)

			better := bestIdx == -1 ||
				newColumns > bestNew ||
				(newColumns == bestNew && len(rows[idx]) < bestSections) ||
				(newColumns == bestNew && len(rows[idx]) == bestSections && pseudo < bestPseudo)
			if better {
				bestIdx, bestNew, bestSections, bestPseudo = idx, newColumns, len(rows[idx]), pseudo
			}
		}

		if bestIdx == -1 {
			break
		}
		add(bestIdx)
	}

	return selected
}
