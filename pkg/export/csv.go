package export

import (
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/journeyfilter"
)

type JourneyRow struct {
	ID          string `csv:"id"`
	Type        string `csv:"type"`
	Departure   string `csv:"departure"`
	Arrival     string `csv:"arrival"`
	Duration    int64  `csv:"duration"`
	NbTransfers int    `csv:"nb_transfers"`
	Tags        string `csv:"tags"`
	Sections    string `csv:"sections"`
	Status      string `csv:"status"`
}

func formatTimestamp(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format(time.RFC3339)
}

func Rows(response *ctdf.Response) []*JourneyRow {
	rows := make([]*JourneyRow, 0, len(response.Journeys))

	for _, journey := range response.Journeys {
		status := "alive"
		if journey.IsDead() {
			status = string(journey.Status)
		}

		rows = append(rows, &JourneyRow{
			ID:          journey.InternalID,
			Type:        journey.Type,
			Departure:   formatTimestamp(journey.DepartureDateTime),
			Arrival:     formatTimestamp(journey.ArrivalDateTime),
			Duration:    journey.Duration,
			NbTransfers: journey.NbTransfers,
			Tags:        strings.Join(journey.RenderedTags(), " "),
			Sections:    journeyfilter.JourneySummary(journey),
			Status:      status,
		})
	}

	return rows
}

// WriteCSV writes one line per journey of the response
func WriteCSV(response *ctdf.Response, writer io.Writer) error {
	return gocsv.Marshal(Rows(response), writer)
}
