package region

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"github.com/travigo/federation/pkg/ctdf"
)

const anyModes = "*"

// FixtureRegion answers from canned responses, keyed by "<origin mode>/<destination mode>"
// with "*" matching any call.
type FixtureRegion struct {
	Name      string                    `json:"name"`
	Responses map[string]*ctdf.Response `json:"responses"`
}

func LoadFixture(path string) (*FixtureRegion, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fixture FixtureRegion
	if err := json.Unmarshal(content, &fixture); err != nil {
		return nil, fmt.Errorf("decoding fixture %s: %w", path, err)
	}
	if fixture.Name == "" {
		return nil, fmt.Errorf("fixture %s has no name", path)
	}

	return &fixture, nil
}

func (f *FixtureRegion) GetName() string {
	return f.Name
}

func (f *FixtureRegion) Journeys(ctx context.Context, call Call) (*ctdf.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response, exists := f.Responses[call.OriginMode+"/"+call.DestinationMode]
	if !exists {
		response, exists = f.Responses[anyModes]
	}
	if !exists || response == nil {
		return nil, ErrNoResponse
	}

	// every call gets its own journeys, the pipeline mutates them
	var copied ctdf.Response
	if err := copier.CopyWithOption(&copied, response, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}

	return &copied, nil
}
