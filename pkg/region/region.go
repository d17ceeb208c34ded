package region

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

var (
	ErrUnknownRegion = errors.New("unknown region")
	ErrNoResponse    = errors.New("region gave no response")
)

// Call is one journey computation asked to a region, the request datetime already
// set for the current round.
type Call struct {
	Request         *ctdf.JourneyRequest
	OriginMode      string
	DestinationMode string
}

// Region is a compute engine able to answer journey calls
type Region interface {
	GetName() string
	Journeys(ctx context.Context, call Call) (*ctdf.Response, error)
}

type Registry struct {
	mutex   sync.RWMutex
	regions map[string]Region
}

func NewRegistry() *Registry {
	return &Registry{
		regions: map[string]Region{},
	}
}

func (r *Registry) Register(region Region) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.regions[region.GetName()] = region

	log.Debug().Str("name", region.GetName()).Msg("Registering new Region")
}

func (r *Registry) Get(name string) (Region, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	region, exists := r.regions[name]
	if !exists {
		return nil, ErrUnknownRegion
	}
	return region, nil
}

func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var names []string
	for name := range r.regions {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
