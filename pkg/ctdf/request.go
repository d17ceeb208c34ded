package ctdf

import (
	"github.com/go-playground/validator/v10"
)

const (
	DirectPathIndifferent          = "indifferent"
	DirectPathOnly                 = "only"
	DirectPathNone                 = "none"
	DirectPathOnlyWithAlternatives = "only_with_alternatives"
)

// JourneyRequest holds every option read by the journey pipeline. Optional
// numeric options are pointers, nil means unset.
type JourneyRequest struct {
	Region      string `query:"region" json:"region"`
	Origin      string `query:"from" json:"from" validate:"required_without=Destination"`
	Destination string `query:"to" json:"to" validate:"required_without=Origin"`

	Datetime        int64 `query:"datetime" json:"datetime"`
	CurrentDatetime int64 `query:"_current_datetime" json:"_current_datetime"`
	Clockwise       bool  `query:"clockwise" json:"clockwise"`
	Debug           bool  `query:"debug" json:"debug"`

	OriginMode      []string `query:"origin_mode" json:"origin_mode" validate:"dive,oneof=walking bike bss car car_no_park ridesharing taxi"`
	DestinationMode []string `query:"destination_mode" json:"destination_mode" validate:"dive,oneof=walking bike bss car car_no_park ridesharing taxi"`

	DirectPath     string   `query:"direct_path" json:"direct_path" validate:"omitempty,oneof=indifferent only none only_with_alternatives"`
	DirectPathMode []string `query:"direct_path_mode" json:"direct_path_mode"`

	MinNbTransfers            int    `query:"min_nb_transfers" json:"min_nb_transfers" validate:"gte=0"`
	MaxTransfers              *int   `query:"max_transfers" json:"max_transfers,omitempty" validate:"omitempty,gte=0"`
	MaxWaitingDuration        *int64 `query:"max_waiting_duration" json:"max_waiting_duration,omitempty" validate:"omitempty,gt=0"`
	MaxAdditionalConnections  *int   `query:"_max_additional_connections" json:"_max_additional_connections,omitempty" validate:"omitempty,gte=0"`
	MaxSuccessivePhysicalMode *int   `query:"_max_successive_physical_mode" json:"_max_successive_physical_mode,omitempty" validate:"omitempty,gte=0"`

	MinBike        *int64 `query:"_min_bike" json:"_min_bike,omitempty"`
	MinCar         *int64 `query:"_min_car" json:"_min_car,omitempty"`
	MinTaxi        *int64 `query:"_min_taxi" json:"_min_taxi,omitempty"`
	MinRidesharing *int64 `query:"_min_ridesharing" json:"_min_ridesharing,omitempty"`

	MaxWalkingDirectPathDuration     *int64 `query:"max_walking_direct_path_duration" json:"max_walking_direct_path_duration,omitempty"`
	MaxBikeDirectPathDuration        *int64 `query:"max_bike_direct_path_duration" json:"max_bike_direct_path_duration,omitempty"`
	MaxBssDirectPathDuration         *int64 `query:"max_bss_direct_path_duration" json:"max_bss_direct_path_duration,omitempty"`
	MaxCarDirectPathDuration         *int64 `query:"max_car_direct_path_duration" json:"max_car_direct_path_duration,omitempty"`
	MaxCarNoParkDirectPathDuration   *int64 `query:"max_car_no_park_direct_path_duration" json:"max_car_no_park_direct_path_duration,omitempty"`
	MaxRidesharingDirectPathDuration *int64 `query:"max_ridesharing_direct_path_duration" json:"max_ridesharing_direct_path_duration,omitempty"`
	MaxTaxiDirectPathDuration        *int64 `query:"max_taxi_direct_path_duration" json:"max_taxi_direct_path_duration,omitempty"`

	FinalLineFilter   bool `query:"_final_line_filter" json:"_final_line_filter"`
	NoSharedSection   bool `query:"no_shared_section" json:"no_shared_section"`
	FilterODTJourneys bool `query:"_filter_odt_journeys" json:"_filter_odt_journeys"`

	NightBusFilterMaxFactor  *float64 `query:"_night_bus_filter_max_factor" json:"_night_bus_filter_max_factor,omitempty" validate:"omitempty,gt=0"`
	NightBusFilterBaseFactor *int64   `query:"_night_bus_filter_base_factor" json:"_night_bus_filter_base_factor,omitempty" validate:"omitempty,gte=0"`

	MaxNbJourneys     *int   `query:"max_nb_journeys" json:"max_nb_journeys,omitempty" validate:"omitempty,gt=0"`
	MinNbJourneys     int    `query:"min_nb_journeys" json:"min_nb_journeys" validate:"gte=0"`
	MinJourneysCalls  *int   `query:"_min_journeys_calls" json:"_min_journeys_calls,omitempty" validate:"omitempty,gt=0"`
	MaxNbCalls        *int   `query:"_max_nb_calls" json:"_max_nb_calls,omitempty" validate:"omitempty,gt=0"`
	TimeframeDuration *int64 `query:"timeframe_duration" json:"timeframe_duration,omitempty" validate:"omitempty,gte=0"`
}

var requestValidator = validator.New()

func (r *JourneyRequest) Validate() error {
	return requestValidator.Struct(r)
}

func (r *JourneyRequest) GetDirectPath() string {
	if r.DirectPath == "" {
		return DirectPathIndifferent
	}
	return r.DirectPath
}

// MaxDirectPathDuration gives max_<mode>_direct_path_duration for a fallback mode tag
func (r *JourneyRequest) MaxDirectPathDuration(mode string) (int64, bool) {
	var value *int64

	switch mode {
	case TagWalking:
		value = r.MaxWalkingDirectPathDuration
	case TagBike:
		value = r.MaxBikeDirectPathDuration
	case TagBss:
		value = r.MaxBssDirectPathDuration
	case TagCar:
		value = r.MaxCarDirectPathDuration
	case TagCarNoPark:
		value = r.MaxCarNoParkDirectPathDuration
	case TagRidesharing:
		value = r.MaxRidesharingDirectPathDuration
	case TagTaxi:
		value = r.MaxTaxiDirectPathDuration
	}

	if value == nil {
		return 0, false
	}
	return *value, true
}
