package planner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/federation/pkg/config"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/region"
)

const requestedAt = int64(1700000000)

// scriptedRegion answers every call through respond and records the datetimes asked
type scriptedRegion struct {
	mutex     sync.Mutex
	datetimes []int64
	modes     []string
	respond   func(call region.Call, nbCall int) (*ctdf.Response, error)
}

func (s *scriptedRegion) GetName() string {
	return "test"
}

func (s *scriptedRegion) Journeys(ctx context.Context, call region.Call) (*ctdf.Response, error) {
	s.mutex.Lock()
	s.datetimes = append(s.datetimes, call.Request.Datetime)
	s.modes = append(s.modes, call.OriginMode+"|"+call.DestinationMode)
	nbCall := len(s.datetimes)
	s.mutex.Unlock()

	return s.respond(call, nbCall)
}

// ptJourney walks a minute, rides the vehicle journey for twenty minutes and walks a minute
func ptJourney(vj string, departure int64) *ctdf.Journey {
	journey := &ctdf.Journey{
		DepartureDateTime: departure,
		ArrivalDateTime:   departure + 1320,
		Duration:          1320,
		Sections: []*ctdf.Section{
			{Type: ctdf.SectionTypeStreetNetwork, Mode: ctdf.StreetNetworkModeWalking, Duration: 60, BeginDateTime: departure, EndDateTime: departure + 60},
			{
				Type:          ctdf.SectionTypePublicTransport,
				Duration:      1200,
				BeginDateTime: departure + 60,
				EndDateTime:   departure + 1260,
				PTDisplayInformations: &ctdf.PTDisplayInformations{
					Uris: ctdf.PTUris{
						Line:           "line:" + vj,
						VehicleJourney: "vj:" + vj,
						PhysicalMode:   "physical_mode:Metro",
					},
				},
			},
			{Type: ctdf.SectionTypeStreetNetwork, Mode: ctdf.StreetNetworkModeWalking, Duration: 60, BeginDateTime: departure + 1260, EndDateTime: departure + 1320},
		},
	}
	journey.UpdateDurations()
	return journey
}

func newPlanner(t *testing.T, fake region.Region) *Planner {
	instance, err := config.Parse([]byte("regions:\n  - name: test\n    url: http://localhost\n"))
	require.NoError(t, err)

	regions := region.NewRegistry()
	regions.Register(fake)

	planner, err := New(instance, regions)
	require.NoError(t, err)
	return planner
}

func ids(response *ctdf.Response) []string {
	var collected []string
	for _, journey := range response.Journeys {
		collected = append(collected, journey.InternalID)
	}
	return collected
}

func TestPlanSingleRound(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		return &ctdf.Response{Journeys: []*ctdf.Journey{
			ptJourney("a", call.Request.Datetime+60),
			ptJourney("b", call.Request.Datetime+600),
		}}, nil
	}}

	response, err := newPlanner(t, fake).Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:      "stop_area:A",
		Destination: "stop_area:B",
		Datetime:    requestedAt,
		Clockwise:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{requestedAt}, fake.datetimes)
	assert.Equal(t, []string{"walking|walking"}, fake.modes)

	require.Equal(t, []string{"1-0", "1-1"}, ids(response))
	assert.Equal(t, "best", response.Journeys[0].Type)
	assert.Equal(t, "rapid", response.Journeys[1].Type)
	assert.True(t, response.Journeys[0].Tags.Has(ctdf.TagWalking))
}

func TestPlanMovesDatetimeUntilEnoughJourneys(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		vj := string(rune('a' + nbCall - 1))
		return &ctdf.Response{Journeys: []*ctdf.Journey{ptJourney(vj, call.Request.Datetime+60)}}, nil
	}}

	request := &ctdf.JourneyRequest{
		Origin:        "stop_area:A",
		Destination:   "stop_area:B",
		Datetime:      requestedAt,
		Clockwise:     true,
		MinNbJourneys: 3,
	}
	response, err := newPlanner(t, fake).Plan(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, []int64{requestedAt, requestedAt + 61, requestedAt + 122}, fake.datetimes)
	assert.Equal(t, []string{"1-0", "2-0", "3-0"}, ids(response))
	// the caller request keeps its datetime
	assert.Equal(t, requestedAt, request.Datetime)
}

func TestPlanStopsOnDuplicates(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		return &ctdf.Response{Journeys: []*ctdf.Journey{ptJourney("same", call.Request.Datetime+60)}}, nil
	}}

	response, err := newPlanner(t, fake).Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:        "stop_area:A",
		Destination:   "stop_area:B",
		Datetime:      requestedAt,
		Clockwise:     true,
		MinNbJourneys: 3,
	})
	require.NoError(t, err)

	// two rounds in a row without a new journey end the search
	assert.Len(t, fake.datetimes, 3)
	assert.Equal(t, []string{"1-0"}, ids(response))
}

func TestPlanDebugKeepsDeadJourneys(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		return &ctdf.Response{Journeys: []*ctdf.Journey{ptJourney("same", call.Request.Datetime+60)}}, nil
	}}

	response, err := newPlanner(t, fake).Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:        "stop_area:A",
		Destination:   "stop_area:B",
		Datetime:      requestedAt,
		Clockwise:     true,
		Debug:         true,
		MinNbJourneys: 3,
	})
	require.NoError(t, err)

	require.Len(t, response.Journeys, 3)
	assert.False(t, response.Journeys[0].IsDead())
	assert.True(t, response.Journeys[1].IsDead())
	assert.Contains(t, response.Journeys[1].DeletionReasons, "duplicate_journey")
}

func TestPlanTimeframeMakesOneRound(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		return &ctdf.Response{Journeys: []*ctdf.Journey{ptJourney("a", call.Request.Datetime+60)}}, nil
	}}

	timeframe := int64(3600)
	_, err := newPlanner(t, fake).Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:            "stop_area:A",
		Destination:       "stop_area:B",
		Datetime:          requestedAt,
		Clockwise:         true,
		MinNbJourneys:     5,
		TimeframeDuration: &timeframe,
	})
	require.NoError(t, err)
	assert.Len(t, fake.datetimes, 1)
}

func TestPlanCallsEveryModeCombination(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		return &ctdf.Response{Journeys: []*ctdf.Journey{ptJourney(call.OriginMode, call.Request.Datetime+60)}}, nil
	}}

	response, err := newPlanner(t, fake).Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:          "stop_area:A",
		Destination:     "stop_area:B",
		Datetime:        requestedAt,
		Clockwise:       true,
		OriginMode:      []string{"walking", "bike"},
		DestinationMode: []string{"walking"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"walking|walking", "bike|walking"}, fake.modes)
	// call ids follow the mode call order, not the answer order
	assert.ElementsMatch(t, []string{"1-0", "2-0"}, ids(response))
}

func TestPlanFailingRegion(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		return nil, errors.New("connection refused")
	}}

	response, err := newPlanner(t, fake).Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:      "stop_area:A",
		Destination: "stop_area:B",
		Datetime:    requestedAt,
		Clockwise:   true,
	})
	require.NoError(t, err)

	assert.Len(t, fake.datetimes, 1)
	assert.Empty(t, response.Journeys)
}

// car fallback as sent by an engine: no durations block, only the sections
const carFixture = `{
  "name": "test",
  "responses": {
    "*": {
      "journeys": [
        {
          "departure_date_time": 1700000000,
          "arrival_date_time": 1700002160,
          "duration": 2160,
          "sections": [
            {"id": "s1", "type": "STREET_NETWORK", "mode": "Car", "duration": 900},
            {"id": "s2", "type": "PARK", "duration": 0},
            {"id": "s3", "type": "STREET_NETWORK", "mode": "Walking", "duration": 60},
            {
              "id": "s4",
              "type": "PUBLIC_TRANSPORT",
              "duration": 1200,
              "display_informations": {"uris": {"line": "line:1", "vehicle_journey": "vj:1", "physical_mode": "physical_mode:Bus"}}
            }
          ]
        }
      ]
    }
  }
}`

func TestPlanComputesDurationsOfRegionJourneys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(carFixture), 0o644))

	fixture, err := region.LoadFixture(path)
	require.NoError(t, err)

	minCar := int64(300)
	response, err := newPlanner(t, fixture).Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:          "stop_area:A",
		Destination:     "stop_area:B",
		Datetime:        requestedAt,
		Clockwise:       true,
		OriginMode:      []string{"car"},
		DestinationMode: []string{"walking"},
		MinCar:          &minCar,
	})
	require.NoError(t, err)

	require.Len(t, response.Journeys, 1)
	journey := response.Journeys[0]
	assert.False(t, journey.IsDead())
	assert.Equal(t, int64(900), journey.Durations.Car)
	assert.Equal(t, int64(2160), journey.Durations.Total)
	assert.True(t, journey.Tags.Has(ctdf.TagCar))
}

func TestPlanErrors(t *testing.T) {
	fake := &scriptedRegion{respond: func(call region.Call, nbCall int) (*ctdf.Response, error) {
		return &ctdf.Response{}, nil
	}}
	planner := newPlanner(t, fake)

	_, err := planner.Plan(context.Background(), &ctdf.JourneyRequest{Region: "elsewhere", Origin: "stop_area:A"})
	assert.ErrorIs(t, err, region.ErrUnknownRegion)

	_, err = planner.Plan(context.Background(), &ctdf.JourneyRequest{
		Origin:          "stop_area:A",
		OriginMode:      []string{"car", "taxi"},
		DestinationMode: []string{"car", "taxi"},
	})
	assert.ErrorIs(t, err, ErrUnsupportedModeCombination)
	assert.Empty(t, fake.datetimes)
}

func TestGetRegionCalls(t *testing.T) {
	calls, err := GetRegionCalls(&ctdf.JourneyRequest{OriginMode: []string{"taxi"}, DestinationMode: []string{"car"}})
	require.NoError(t, err)
	assert.Equal(t, []ModeCall{{"taxi", "car"}}, calls)

	calls, err = GetRegionCalls(&ctdf.JourneyRequest{
		OriginMode:      []string{"walking", "bike", "car"},
		DestinationMode: []string{"walking", "bss"},
	})
	require.NoError(t, err)
	assert.Equal(t, []ModeCall{
		{"walking", "walking"},
		{"bike", "walking"},
		{"car", "walking"},
		{"bike", "bss"},
		{"car", "bss"},
	}, calls)

	_, err = GetRegionCalls(&ctdf.JourneyRequest{OriginMode: []string{"walking", "bike"}, DestinationMode: []string{"car", "taxi"}})
	assert.ErrorIs(t, err, ErrUnsupportedModeCombination)
}

func TestNextDatetime(t *testing.T) {
	early := ptJourney("a", requestedAt+300)
	late := ptJourney("b", requestedAt+900)
	direct := &ctdf.Journey{
		DepartureDateTime: requestedAt,
		ArrivalDateTime:   requestedAt + 600,
		Sections:          []*ctdf.Section{{Type: ctdf.SectionTypeStreetNetwork, Mode: ctdf.StreetNetworkModeWalking, Duration: 600}},
	}
	responses := []*ctdf.Response{nil, {Journeys: []*ctdf.Journey{direct, late, early}}}

	datetime, ok := NextDatetime(responses, true)
	require.True(t, ok)
	assert.Equal(t, early.DepartureDateTime+1, datetime)

	datetime, ok = NextDatetime(responses, false)
	require.True(t, ok)
	assert.Equal(t, late.ArrivalDateTime-1, datetime)

	_, ok = NextDatetime([]*ctdf.Response{{Journeys: []*ctdf.Journey{direct}}}, true)
	assert.False(t, ok)
}
