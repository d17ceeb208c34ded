package planner

import (
	"errors"

	"github.com/travigo/federation/pkg/ctdf"
	"golang.org/x/exp/slices"
)

var ErrUnsupportedModeCombination = errors.New("unsupported mode combination")

// ModeCall is the fallback modes of one region call
type ModeCall struct {
	OriginMode      string
	DestinationMode string
}

var allowedCombinations = []ModeCall{
	{ctdf.TagBss, ctdf.TagBss},
	{ctdf.TagWalking, ctdf.TagWalking},
	{ctdf.TagBike, ctdf.TagWalking},
	{ctdf.TagCar, ctdf.TagWalking},
	{ctdf.TagBike, ctdf.TagBss},
	{ctdf.TagCar, ctdf.TagBss},
	{ctdf.TagBike, ctdf.TagBike},
}

// GetRegionCalls gives the mode pairs to ask the region for. A single mode on each
// side is always called, otherwise only the allowed pairs of the product are.
func GetRegionCalls(request *ctdf.JourneyRequest) ([]ModeCall, error) {
	if len(request.OriginMode) == 1 && len(request.DestinationMode) == 1 {
		return []ModeCall{{request.OriginMode[0], request.DestinationMode[0]}}, nil
	}

	var calls []ModeCall
	for _, combination := range allowedCombinations {
		if slices.Contains(request.OriginMode, combination.OriginMode) &&
			slices.Contains(request.DestinationMode, combination.DestinationMode) {
			calls = append(calls, combination)
		}
	}

	if len(calls) == 0 {
		return nil, ErrUnsupportedModeCombination
	}
	return calls, nil
}
