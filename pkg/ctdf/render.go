package ctdf

import "github.com/liip/sheriff"

// RenderGroups are the sheriff groups exposed to clients, debug adds the internal
// ids and the deletion state of the journeys
func RenderGroups(debug bool) []string {
	if debug {
		return []string{"basic", "detailed", "debug"}
	}
	return []string{"basic", "detailed"}
}

// Render reduces the response to what a client may see. Dead journeys, only left in
// debug, carry their deletion markers in their tags.
func Render(response *Response, debug bool) (interface{}, error) {
	rendered := *response
	rendered.Journeys = make([]*Journey, 0, len(response.Journeys))

	for _, journey := range response.Journeys {
		copied := *journey
		copied.Tags = journey.RenderedTags()
		rendered.Journeys = append(rendered.Journeys, &copied)
	}

	return sheriff.Marshal(&sheriff.Options{
		Groups: RenderGroups(debug),
	}, rendered)
}
