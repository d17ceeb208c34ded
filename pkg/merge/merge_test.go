package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/federation/pkg/ctdf"
)

func errorResponse(id string, message string) *ctdf.Response {
	return &ctdf.Response{Error: &ctdf.ResponseError{ID: id, Message: message}}
}

func journeyWithTicket(id string, ticket string, feedPublisher string) *ctdf.Journey {
	return &ctdf.Journey{
		InternalID: id,
		Fare:       &ctdf.Fare{Found: true, TicketIDs: []string{ticket}},
		Sections: []*ctdf.Section{
			{ID: "section_" + id, Type: ctdf.SectionTypePublicTransport, FeedPublisherID: feedPublisher},
		},
	}
}

func TestMergeErrorAggregation(t *testing.T) {
	merged := MergeResponses([]*ctdf.Response{
		errorResponse(ctdf.ErrorIDDateOutOfBounds, "date is out of bounds"),
		errorResponse(ctdf.ErrorIDUnknownObject, "unknown origin"),
	}, false)

	require.NotNil(t, merged.Error)
	assert.Equal(t, ctdf.ErrorIDNoSolution, merged.Error.ID)
	assert.Contains(t, merged.Error.Message, "date is out of bounds")
	assert.Contains(t, merged.Error.Message, "unknown origin")
	assert.Empty(t, merged.Journeys)
}

func TestMergeSingleError(t *testing.T) {
	merged := MergeResponses([]*ctdf.Response{
		errorResponse(ctdf.ErrorIDDateOutOfBounds, "first"),
		nil,
		errorResponse(ctdf.ErrorIDDateOutOfBounds, "second"),
	}, false)

	require.NotNil(t, merged.Error)
	assert.Equal(t, ctdf.ErrorIDDateOutOfBounds, merged.Error.ID)
	assert.Equal(t, "first", merged.Error.Message)
}

func TestMergeDropsErrorWhenJourneysFound(t *testing.T) {
	journeys := &ctdf.Response{
		Journeys: []*ctdf.Journey{journeyWithTicket("1-0", "ticket:1", "fp:1")},
		Tickets:  []*ctdf.Ticket{{ID: "ticket:1", SectionIDs: []string{"section_1-0"}}},
	}

	merged := MergeResponses([]*ctdf.Response{journeys, errorResponse(ctdf.ErrorIDNoSolution, "nothing")}, false)

	assert.Nil(t, merged.Error)
	assert.Len(t, merged.Journeys, 1)
	assert.Len(t, merged.Tickets, 1)
}

func TestMergeNoErrorWithoutJourneys(t *testing.T) {
	merged := MergeResponses([]*ctdf.Response{{}, nil}, false)
	assert.Nil(t, merged.Error)
	assert.Empty(t, merged.Journeys)
}

func TestMergeChangesIDs(t *testing.T) {
	first := &ctdf.Response{
		Journeys: []*ctdf.Journey{journeyWithTicket("1-0", "ticket:1", "fp:1")},
		Tickets:  []*ctdf.Ticket{{ID: "ticket:1", SectionIDs: []string{"section"}}},
	}
	second := &ctdf.Response{
		Journeys: []*ctdf.Journey{journeyWithTicket("1-0", "ticket:1", "fp:1")},
		Tickets:  []*ctdf.Ticket{{ID: "ticket:1", SectionIDs: []string{"section"}}},
	}

	merged := MergeResponses([]*ctdf.Response{first, second}, false)

	require.Len(t, merged.Journeys, 2)
	assert.Equal(t, "1-0", merged.Journeys[0].InternalID)
	assert.Equal(t, "1-0_1", merged.Journeys[1].InternalID)
	assert.Equal(t, []string{"ticket:1_0"}, merged.Journeys[0].TicketIDs())
	assert.Equal(t, []string{"ticket:1_1"}, merged.Journeys[1].TicketIDs())
	assert.Equal(t, "ticket:1_0", merged.Tickets[0].ID)
	assert.Equal(t, "ticket:1_1", merged.Tickets[1].ID)
	assert.Equal(t, "section_1-0_1", merged.Journeys[1].Sections[0].ID)
}

func TestMergeTicketsAndFeedPublishers(t *testing.T) {
	kept := journeyWithTicket("1-0", "ticket:kept", "fp:kept")
	dead := journeyWithTicket("1-1", "ticket:dead", "fp:dead")
	dead.Status = ctdf.JourneyStatusDead

	newResponse := func() *ctdf.Response {
		return &ctdf.Response{
			Journeys: []*ctdf.Journey{kept, dead},
			Tickets:  []*ctdf.Ticket{{ID: "ticket:kept"}, {ID: "ticket:dead"}, {ID: "ticket:unused"}},
			FeedPublishers: []*ctdf.FeedPublisher{
				{ID: "fp:kept"}, {ID: "fp:dead"},
			},
			Impacts:  []*ctdf.Impact{{URI: "impact:1"}, {URI: "impact:1"}},
			Terminus: []*ctdf.Terminus{{URI: "stop_area:1"}},
		}
	}

	merged := MergeResponses([]*ctdf.Response{newResponse()}, false)
	assert.Len(t, merged.Tickets, 1)
	assert.Equal(t, "ticket:kept_0", merged.Tickets[0].ID)
	require.Len(t, merged.FeedPublishers, 1)
	assert.Equal(t, "fp:kept", merged.FeedPublishers[0].ID)
	assert.Len(t, merged.Impacts, 1)
	assert.Len(t, merged.Terminus, 1)
}

func TestMergeDebugKeepsEverythingReferenced(t *testing.T) {
	kept := journeyWithTicket("1-0", "ticket:kept", "fp:kept")
	dead := journeyWithTicket("1-1", "ticket:dead", "fp:dead")
	dead.Status = ctdf.JourneyStatusDead

	response := &ctdf.Response{
		Journeys:       []*ctdf.Journey{kept, dead},
		Tickets:        []*ctdf.Ticket{{ID: "ticket:kept"}, {ID: "ticket:dead"}},
		FeedPublishers: []*ctdf.FeedPublisher{{ID: "fp:kept"}, {ID: "fp:dead"}, {ID: "fp:other"}},
	}

	merged := MergeResponses([]*ctdf.Response{response}, true)
	assert.Len(t, merged.Tickets, 2)
	assert.Len(t, merged.FeedPublishers, 3)
}
