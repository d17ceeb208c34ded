package ctdf

const (
	ErrorIDNoSolution          = "no_solution"
	ErrorIDNoOriginNorDest     = "no_origin_nor_destination"
	ErrorIDDateOutOfBounds     = "date_out_of_bounds"
	ErrorIDUnknownObject       = "unknown_object"
	ErrorIDServiceUnavailable  = "service_unavailable"
	ErrorIDInternalError       = "internal_error"
	ErrorIDBadRequestParameter = "bad_request"
)

type ResponseError struct {
	ID      string `groups:"basic" json:"id"`
	Message string `groups:"basic" json:"message"`
}

type Cost struct {
	Value    float64 `groups:"basic" json:"value"`
	Currency string  `groups:"basic" json:"currency"`
}

type Ticket struct {
	ID         string   `groups:"basic" json:"id"`
	Name       string   `groups:"basic" json:"name,omitempty"`
	Found      bool     `groups:"basic" json:"found"`
	Cost       *Cost    `groups:"basic" json:"cost,omitempty"`
	SectionIDs []string `groups:"basic" json:"section_ids,omitempty"`
}

type FeedPublisher struct {
	ID      string `groups:"basic" json:"id"`
	Name    string `groups:"basic" json:"name"`
	URL     string `groups:"basic" json:"url,omitempty"`
	License string `groups:"basic" json:"license,omitempty"`
}

type Impact struct {
	URI      string `groups:"basic" json:"uri"`
	Severity string `groups:"basic" json:"severity,omitempty"`
	Effect   string `groups:"basic" json:"effect,omitempty"`
	Message  string `groups:"basic" json:"message,omitempty"`
}

type Terminus struct {
	URI  string `groups:"basic" json:"uri"`
	Name string `groups:"basic" json:"name,omitempty"`
}

// Response is what one compute engine call gives back, and also the shape of the
// merged result handed to clients.
type Response struct {
	Error *ResponseError `groups:"basic" json:"error,omitempty"`

	Journeys       []*Journey       `groups:"basic" json:"journeys"`
	Tickets        []*Ticket        `groups:"basic" json:"tickets,omitempty"`
	FeedPublishers []*FeedPublisher `groups:"basic" json:"feed_publishers,omitempty"`
	Impacts        []*Impact        `groups:"basic" json:"impacts,omitempty"`
	Terminus       []*Terminus      `groups:"basic" json:"terminus,omitempty"`

	CarCo2Emission *Co2Emission `groups:"basic" json:"car_co2_emission,omitempty"`
}

func (r *Response) HasError() bool {
	return r.Error != nil
}
