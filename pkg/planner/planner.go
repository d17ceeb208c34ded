package planner

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/federation/pkg/config"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/culling"
	"github.com/travigo/federation/pkg/journeyfilter"
	"github.com/travigo/federation/pkg/merge"
	"github.com/travigo/federation/pkg/qualifier"
	"github.com/travigo/federation/pkg/region"
	"github.com/travigo/federation/pkg/stats"
	"github.com/travigo/federation/pkg/tagging"
)

// Planner answers journey requests: it calls a region round after round until
// enough journeys are found, then filters, types and culls them.
type Planner struct {
	Instance *config.Instance
	Regions  *region.Registry
	Culler   *culling.Culler
	Filters  []journeyfilter.SingleJourneyFilter
}

func New(instance *config.Instance, regions *region.Registry) (*Planner, error) {
	filters, err := instance.Filters()
	if err != nil {
		return nil, err
	}

	culler := culling.NewCuller()
	culler.ProtectedTags = instance.ProtectedTags
	if instance.MaxCombinations > 0 {
		culler.MaxCombinations = instance.MaxCombinations
	}

	return &Planner{
		Instance: instance,
		Regions:  regions,
		Culler:   culler,
		Filters:  filters,
	}, nil
}

// session holds the state of one request
type session struct {
	request     *ctdf.JourneyRequest
	region      region.Region
	calls       []ModeCall
	nbCalls     int
	nbRounds    int
	nbReceived  int
	emptyRounds int
}

func (p *Planner) regionFor(request *ctdf.JourneyRequest) (region.Region, error) {
	if request.Region == "" {
		names := p.Regions.Names()
		if len(names) != 1 {
			return nil, region.ErrUnknownRegion
		}
		request.Region = names[0]
	}

	return p.Regions.Get(request.Region)
}

func (p *Planner) Plan(ctx context.Context, request *ctdf.JourneyRequest) (*ctdf.Response, error) {
	r, err := p.regionFor(request)
	if err != nil {
		return nil, fmt.Errorf("region %q: %w", request.Region, err)
	}

	p.Instance.ApplyDefaults(request)
	if request.Datetime == 0 {
		request.Datetime = time.Now().Unix()
	}

	calls, err := GetRegionCalls(request)
	if err != nil {
		return nil, err
	}

	requestStats := stats.NewJourneyRequestStats(request)

	s := &session{
		request: request,
		region:  r,
		calls:   calls,
	}

	responses := p.fillJourneys(ctx, s)
	response := p.finalise(responses, request)

	requestStats.NbRegionCalls = s.nbCalls
	requestStats.NbRounds = s.nbRounds
	requestStats.JourneysReceived = s.nbReceived
	requestStats.Complete(response)
	stats.Record(requestStats)

	log.Info().
		Str("region", request.Region).
		Int("rounds", s.nbRounds).
		Int("calls", s.nbCalls).
		Int("journeys", requestStats.JourneysReturned).
		Msg("Journey request planned")

	return response, nil
}

// fillJourneys runs the rounds of region calls, each round filtering its new journeys
// against themselves and the previous ones
func (p *Planner) fillJourneys(ctx context.Context, s *session) []*ctdf.Response {
	request := s.request
	var responses []*ctdf.Response

	roundRequest, err := copyRequest(request)
	if err != nil {
		log.Error().Err(err).Msg("Failed to copy request")
		return nil
	}

	for roundRequest != nil {
		s.nbRounds++

		newResponses := p.callRegion(ctx, s, roundRequest)
		if ctx.Err() != nil {
			responses = append(responses, newResponses...)
			break
		}

		tagging.TagJourneys(newResponses)
		journeyfilter.FilterJourneys(newResponses, request, p.Instance.SuccessivePhysicalModeToLimitID, p.Filters...)

		// the next round starts from the journeys of this one, duplicates included
		next := nextRequest(roundRequest, newResponses)

		newJourneys := ctdf.Collect(ctdf.QualifiedJourneys(newResponses))
		journeyfilter.FilterSimilarVJJourneys(journeyfilter.Combinations(newJourneys), request)

		newJourneys = ctdf.Collect(ctdf.QualifiedJourneys(newResponses))
		previousJourneys := ctdf.Collect(ctdf.QualifiedJourneys(responses))
		journeyfilter.FilterSimilarVJJourneys(journeyfilter.Product(newJourneys, previousJourneys), request)

		responses = append(responses, newResponses...)

		nbNew := ctdf.CountQualifiedJourneys(newResponses)
		if nbNew == 0 {
			s.emptyRounds++
		} else {
			s.emptyRounds = 0
		}

		log.Debug().Int("round", s.nbRounds).Int("new_journeys", nbNew).Msg("Region round done")

		if p.isComplete(s, responses) {
			break
		}

		roundRequest = next
	}

	return responses
}

func (p *Planner) isComplete(s *session, responses []*ctdf.Response) bool {
	request := s.request

	if request.TimeframeDuration != nil {
		return true
	}
	if request.MaxNbCalls != nil && s.nbRounds >= *request.MaxNbCalls {
		return true
	}
	if s.emptyRounds >= 2 {
		return true
	}

	minJourneysCalls := 1
	if request.MinJourneysCalls != nil {
		minJourneysCalls = *request.MinJourneysCalls
	}

	qualified := ctdf.CountQualifiedJourneys(responses)
	// one more round when nothing is left
	if qualified == 0 {
		minJourneysCalls = max(minJourneysCalls, 2)
	}

	return qualified >= max(request.MinNbJourneys, 1) && s.nbRounds >= minJourneysCalls
}

type callResult struct {
	index    int
	response *ctdf.Response
}

// callRegion makes every mode call of a round on the worker pool. A failed call
// gives a nil response.
func (p *Planner) callRegion(ctx context.Context, s *session, request *ctdf.JourneyRequest) []*ctdf.Response {
	workers := pool.NewWithResults[callResult]().WithMaxGoroutines(max(p.Instance.WorkerPoolSize, 1))

	for index, modes := range s.calls {
		call := region.Call{
			Request:         request,
			OriginMode:      modes.OriginMode,
			DestinationMode: modes.DestinationMode,
		}

		workers.Go(func() callResult {
			response, err := s.region.Journeys(ctx, call)
			if err != nil {
				log.Error().Err(err).
					Str("region", s.region.GetName()).
					Str("modes", call.OriginMode+"|"+call.DestinationMode).
					Msg("Region call failed")
				return callResult{index: index}
			}
			return callResult{index: index, response: response}
		})
	}

	results := workers.Wait()
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	responses := make([]*ctdf.Response, 0, len(results))
	for _, result := range results {
		s.nbCalls++

		if result.response != nil {
			for idx, journey := range result.response.Journeys {
				journey.InternalID = fmt.Sprintf("%d-%d", s.nbCalls, idx)
			}
			s.nbReceived += len(result.response.Journeys)

			log.Debug().
				Str("modes", s.calls[result.index].OriginMode+"|"+s.calls[result.index].DestinationMode).
				Int("journeys", len(result.response.Journeys)).
				Msg("Region call answered")
		}

		responses = append(responses, result.response)
	}

	return responses
}

func copyRequest(request *ctdf.JourneyRequest) (*ctdf.JourneyRequest, error) {
	var copied ctdf.JourneyRequest
	if err := copier.CopyWithOption(&copied, request, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return &copied, nil
}

func ptJourneys(journeys iter.Seq[*ctdf.Journey]) iter.Seq[*ctdf.Journey] {
	return func(yield func(*ctdf.Journey) bool) {
		for journey := range journeys {
			if journey.HasPublicTransport() && !yield(journey) {
				return
			}
		}
	}
}

// NextDatetime is the datetime of the next round: one second after the departure of the
// best public transport journey, or one second before its arrival counter-clockwise.
func NextDatetime(responses []*ctdf.Response, clockwise bool) (int64, bool) {
	best := qualifier.MinFromCriteria(ptJourneys(ctdf.QualifiedJourneys(responses)), qualifier.ASAPCriteria(clockwise))
	if best == nil {
		return 0, false
	}

	if clockwise {
		return best.DepartureDateTime + 1, true
	}
	return best.ArrivalDateTime - 1, true
}

// nextRequest is nil when there is no journey to move the datetime from
func nextRequest(request *ctdf.JourneyRequest, responses []*ctdf.Response) *ctdf.JourneyRequest {
	datetime, ok := NextDatetime(responses, request.Clockwise)
	if !ok {
		return nil
	}

	next, err := copyRequest(request)
	if err != nil {
		log.Error().Err(err).Msg("Failed to copy request")
		return nil
	}
	next.Datetime = datetime

	return next
}

func (p *Planner) finalise(responses []*ctdf.Response, request *ctdf.JourneyRequest) *ctdf.Response {
	journeyfilter.ApplyFinalJourneyFilters(responses, request)

	response := merge.MergeResponses(responses, request.Debug)
	merged := []*ctdf.Response{response}

	qualifier.SortJourneys(response, p.Instance.JourneyOrder, request.Clockwise)

	tagging.ComputeCarCo2Emission(response)
	tagging.TagEcologic(response)

	journeyfilter.DeleteJourneys(merged, request.Debug)

	qualifier.TypeJourneys(response, request.Clockwise)

	p.Culler.CullJourneys(response, request)

	journeyfilter.FilterSimilarLineAndCrowflyJourneys(journeyfilter.Combinations(ctdf.Collect(ctdf.QualifiedJourneys(merged))), request)
	journeyfilter.DeleteJourneys(merged, request.Debug)

	return response
}
