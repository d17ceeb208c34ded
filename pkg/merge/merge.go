package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

// ChangeIDs suffixes the ticket, section and fare ids of the response with the offset
// so they cannot collide with the ids of an other response.
func ChangeIDs(response *ctdf.Response, offset int) {
	suffix := "_" + strconv.Itoa(offset)

	for _, ticket := range response.Tickets {
		ticket.ID += suffix
		for i := range ticket.SectionIDs {
			ticket.SectionIDs[i] += suffix
		}
	}

	for _, journey := range response.Journeys {
		if journey.Fare != nil {
			for i := range journey.Fare.TicketIDs {
				journey.Fare.TicketIDs[i] += suffix
			}
		}
		for _, section := range journey.Sections {
			section.ID += suffix
		}
	}
}

// MergeResponses builds one response out of all the successful ones. When no
// journey is left the errors of the responses are aggregated into one.
func MergeResponses(responses []*ctdf.Response, isDebug bool) *ctdf.Response {
	merged := &ctdf.Response{}

	internalIDs := map[string]bool{}
	feedPublishers := map[string]bool{}
	impacts := map[string]bool{}
	terminus := map[string]bool{}

	for _, response := range responses {
		if response == nil || response.HasError() || len(response.Journeys) == 0 {
			continue
		}

		ChangeIDs(response, len(merged.Journeys))

		referencedTickets := map[string]bool{}
		referencedFeedPublishers := map[string]bool{}
		for _, journey := range response.Journeys {
			if internalIDs[journey.InternalID] {
				journey.InternalID += "_" + strconv.Itoa(len(merged.Journeys))
			}
			internalIDs[journey.InternalID] = true

			if journey.IsDead() && !isDebug {
				continue
			}
			for _, ticketID := range journey.TicketIDs() {
				referencedTickets[ticketID] = true
			}
			for _, section := range journey.Sections {
				if section.FeedPublisherID != "" {
					referencedFeedPublishers[section.FeedPublisherID] = true
				}
			}
		}

		merged.Journeys = append(merged.Journeys, response.Journeys...)

		for _, ticket := range response.Tickets {
			if referencedTickets[ticket.ID] {
				merged.Tickets = append(merged.Tickets, ticket)
			}
		}

		for _, feedPublisher := range response.FeedPublishers {
			if feedPublishers[feedPublisher.ID] {
				continue
			}
			if isDebug || referencedFeedPublishers[feedPublisher.ID] {
				feedPublishers[feedPublisher.ID] = true
				merged.FeedPublishers = append(merged.FeedPublishers, feedPublisher)
			}
		}

		for _, impact := range response.Impacts {
			if !impacts[impact.URI] {
				impacts[impact.URI] = true
				merged.Impacts = append(merged.Impacts, impact)
			}
		}

		for _, term := range response.Terminus {
			if !terminus[term.URI] {
				terminus[term.URI] = true
				merged.Terminus = append(merged.Terminus, term)
			}
		}

		if merged.CarCo2Emission == nil && response.CarCo2Emission != nil {
			merged.CarCo2Emission = response.CarCo2Emission
		}
	}

	if len(merged.Journeys) == 0 {
		merged.Error = aggregateErrors(responses)
	}

	log.Debug().Int("journeys", len(merged.Journeys)).Int("responses", len(responses)).Msg("Merged responses")

	return merged
}

func aggregateErrors(responses []*ctdf.Response) *ctdf.ResponseError {
	var errorIDs []string
	errors := map[string]*ctdf.ResponseError{}

	for _, response := range responses {
		if response == nil || !response.HasError() {
			continue
		}
		if _, exists := errors[response.Error.ID]; !exists {
			errorIDs = append(errorIDs, response.Error.ID)
			errors[response.Error.ID] = response.Error
		}
	}

	switch len(errorIDs) {
	case 0:
		return nil
	case 1:
		responseError := *errors[errorIDs[0]]
		return &responseError
	}

	messages := make([]string, 0, len(errorIDs))
	for _, id := range errorIDs {
		messages = append(messages, errors[id].Message)
	}

	return &ctdf.ResponseError{
		ID:      ctdf.ErrorIDNoSolution,
		Message: fmt.Sprintf("several errors occurred: \n * %s", strings.Join(messages, "\n * ")),
	}
}
