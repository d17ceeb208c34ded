package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/elastic_client"
)

// JourneyRequestStats is the document stored for every planned journey request
type JourneyRequestStats struct {
	Timestamp time.Time

	Region          string
	Datetime        int64
	Clockwise       bool
	Debug           bool
	OriginMode      []string
	DestinationMode []string

	NbRegionCalls    int
	NbRounds         int
	JourneysReceived int
	JourneysReturned int

	// Only filled in debug, dead journeys are gone otherwise
	DeletionReasons map[string]int `json:",omitempty"`

	DurationMS int64
	ErrorID    string `json:",omitempty"`
}

func NewJourneyRequestStats(request *ctdf.JourneyRequest) *JourneyRequestStats {
	return &JourneyRequestStats{
		Timestamp:       time.Now(),
		Region:          request.Region,
		Datetime:        request.Datetime,
		Clockwise:       request.Clockwise,
		Debug:           request.Debug,
		OriginMode:      request.OriginMode,
		DestinationMode: request.DestinationMode,
	}
}

func IndexName(timestamp time.Time) string {
	return fmt.Sprintf("journey-requests-%s", timestamp.Format("2006-01"))
}

// Complete fills the outcome of the request from the final response
func (s *JourneyRequestStats) Complete(response *ctdf.Response) {
	s.DurationMS = time.Since(s.Timestamp).Milliseconds()

	if response == nil {
		return
	}
	if response.Error != nil {
		s.ErrorID = response.Error.ID
	}

	for _, journey := range response.Journeys {
		if !journey.IsDead() {
			s.JourneysReturned++
			continue
		}

		if s.DeletionReasons == nil {
			s.DeletionReasons = map[string]int{}
		}
		for _, reason := range journey.DeletionReasons {
			s.DeletionReasons[reason]++
		}
	}
}

func Record(s *JourneyRequestStats) {
	if elastic_client.Client == nil {
		return
	}

	document, err := json.Marshal(s)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode journey request stats")
		return
	}

	elastic_client.IndexRequest(IndexName(s.Timestamp), bytes.NewReader(document))
}
