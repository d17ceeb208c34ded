package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/journeyfilter"
	"github.com/travigo/federation/pkg/qualifier"
	"github.com/travigo/federation/pkg/util"
	"gopkg.in/yaml.v3"
)

var ErrNoRegion = errors.New("no region configured")

const (
	DefaultPath = "config.yml"

	defaultSuccessivePhysicalModeToLimitID = "physical_mode:Bus"
	defaultMaxSuccessivePhysicalMode       = 0
	defaultWorkerPoolSize                  = 3
	defaultMinJourneysCalls                = 1
	defaultMaxNbCalls                      = 10
)

type Region struct {
	Name     string   `yaml:"name" validate:"required"`
	URL      string   `yaml:"url" validate:"omitempty,url"`
	Fixture  string   `yaml:"fixture" validate:"required_without=URL"`
	Timeout  Duration `yaml:"timeout"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

type ExpressionFilter struct {
	Name       string `yaml:"name" validate:"required"`
	Expression string `yaml:"expression" validate:"required"`
}

// Instance is the configuration of the journey service, every request is defaulted from it
type Instance struct {
	Regions []Region `yaml:"regions" validate:"dive"`

	MaxAdditionalConnections        int    `yaml:"max_additional_connections" validate:"gte=0"`
	SuccessivePhysicalModeToLimitID string `yaml:"successive_physical_mode_to_limit_id"`
	MaxSuccessivePhysicalMode       int    `yaml:"max_successive_physical_mode" validate:"gte=0"`

	MinBike        Duration `yaml:"min_bike"`
	MinCar         Duration `yaml:"min_car"`
	MinTaxi        Duration `yaml:"min_taxi"`
	MinRidesharing Duration `yaml:"min_ridesharing"`

	MaxWaitingDuration Duration `yaml:"max_waiting_duration"`

	MaxWalkingDirectPathDuration     Duration `yaml:"max_walking_direct_path_duration"`
	MaxBikeDirectPathDuration        Duration `yaml:"max_bike_direct_path_duration"`
	MaxBssDirectPathDuration         Duration `yaml:"max_bss_direct_path_duration"`
	MaxCarDirectPathDuration         Duration `yaml:"max_car_direct_path_duration"`
	MaxCarNoParkDirectPathDuration   Duration `yaml:"max_car_no_park_direct_path_duration"`
	MaxRidesharingDirectPathDuration Duration `yaml:"max_ridesharing_direct_path_duration"`
	MaxTaxiDirectPathDuration        Duration `yaml:"max_taxi_direct_path_duration"`

	NightBusFilterMaxFactor  float64  `yaml:"night_bus_filter_max_factor" validate:"gte=0"`
	NightBusFilterBaseFactor Duration `yaml:"night_bus_filter_base_factor"`

	JourneyOrder     string `yaml:"journey_order" validate:"oneof=arrival_time departure_time"`
	WorkerPoolSize   int    `yaml:"worker_pool_size" validate:"gt=0"`
	MinJourneysCalls int    `yaml:"min_journeys_calls" validate:"gt=0"`
	MaxNbCalls       int    `yaml:"max_nb_calls" validate:"gt=0"`

	MaxCombinations int      `yaml:"max_combinations" validate:"gte=0"`
	ProtectedTags   []string `yaml:"protected_tags"`

	ExpressionFilters []ExpressionFilter `yaml:"expression_filters" validate:"dive"`
}

func defaultInstance() *Instance {
	maxWaiting, _ := ParseDuration("PT4H")

	return &Instance{
		MaxAdditionalConnections:        journeyfilter.DefaultMaxAdditionalConnections,
		SuccessivePhysicalModeToLimitID: defaultSuccessivePhysicalModeToLimitID,
		MaxSuccessivePhysicalMode:       defaultMaxSuccessivePhysicalMode,
		MaxWaitingDuration:              maxWaiting,
		JourneyOrder:                    qualifier.JourneyOrderArrivalTime,
		WorkerPoolSize:                  defaultWorkerPoolSize,
		MinJourneysCalls:                defaultMinJourneysCalls,
		MaxNbCalls:                      defaultMaxNbCalls,
	}
}

// Default is the instance used when no configuration file is given, it has no region
func Default() *Instance {
	return defaultInstance()
}

var configValidator = validator.New()

// Path gives the configuration file to read, the flag value winning over FEDERATION_CONFIG
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	env := util.GetEnvironmentVariables()
	if env["FEDERATION_CONFIG"] != "" {
		return env["FEDERATION_CONFIG"]
	}

	return DefaultPath
}

func Load(path string) (*Instance, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return Parse(content)
}

func Parse(content []byte) (*Instance, error) {
	instance := defaultInstance()

	if err := yaml.Unmarshal(content, instance); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if len(instance.Regions) == 0 {
		return nil, ErrNoRegion
	}

	if err := configValidator.Struct(instance); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return instance, nil
}

// Filters compiles the configured expression filters
func (i *Instance) Filters() ([]journeyfilter.SingleJourneyFilter, error) {
	var filters []journeyfilter.SingleJourneyFilter

	for _, filterConfig := range i.ExpressionFilters {
		filter, err := journeyfilter.NewExpressionFilter(filterConfig.Name, filterConfig.Expression)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}

	return filters, nil
}

func defaultTo[T any](value **T, fallback *T) {
	if *value == nil && fallback != nil {
		*value = fallback
	}
}

func intPtr(value int) *int {
	return &value
}

// ApplyDefaults fills the options the request left unset with the instance values
func (i *Instance) ApplyDefaults(request *ctdf.JourneyRequest) {
	if request.DirectPath == "" {
		request.DirectPath = ctdf.DirectPathIndifferent
	}

	defaultTo(&request.MaxSuccessivePhysicalMode, intPtr(i.MaxSuccessivePhysicalMode))
	defaultTo(&request.MaxAdditionalConnections, intPtr(i.MaxAdditionalConnections))
	defaultTo(&request.MaxWaitingDuration, i.MaxWaitingDuration.SecondsPtr())
	defaultTo(&request.MinJourneysCalls, intPtr(i.MinJourneysCalls))
	defaultTo(&request.MaxNbCalls, intPtr(i.MaxNbCalls))

	defaultTo(&request.MinBike, i.MinBike.SecondsPtr())
	defaultTo(&request.MinCar, i.MinCar.SecondsPtr())
	defaultTo(&request.MinTaxi, i.MinTaxi.SecondsPtr())
	defaultTo(&request.MinRidesharing, i.MinRidesharing.SecondsPtr())

	defaultTo(&request.MaxWalkingDirectPathDuration, i.MaxWalkingDirectPathDuration.SecondsPtr())
	defaultTo(&request.MaxBikeDirectPathDuration, i.MaxBikeDirectPathDuration.SecondsPtr())
	defaultTo(&request.MaxBssDirectPathDuration, i.MaxBssDirectPathDuration.SecondsPtr())
	defaultTo(&request.MaxCarDirectPathDuration, i.MaxCarDirectPathDuration.SecondsPtr())
	defaultTo(&request.MaxCarNoParkDirectPathDuration, i.MaxCarNoParkDirectPathDuration.SecondsPtr())
	defaultTo(&request.MaxRidesharingDirectPathDuration, i.MaxRidesharingDirectPathDuration.SecondsPtr())
	defaultTo(&request.MaxTaxiDirectPathDuration, i.MaxTaxiDirectPathDuration.SecondsPtr())

	if i.NightBusFilterMaxFactor > 0 {
		factor := i.NightBusFilterMaxFactor
		defaultTo(&request.NightBusFilterMaxFactor, &factor)
	}
	defaultTo(&request.NightBusFilterBaseFactor, i.NightBusFilterBaseFactor.SecondsPtr())

	if len(request.OriginMode) == 0 {
		request.OriginMode = []string{ctdf.TagWalking}
	}
	if len(request.DestinationMode) == 0 {
		request.DestinationMode = []string{ctdf.TagWalking}
	}
}
