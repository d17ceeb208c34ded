package ctdf

type SectionType string

const (
	SectionTypePublicTransport   SectionType = "PUBLIC_TRANSPORT"
	SectionTypeOnDemandTransport SectionType = "ON_DEMAND_TRANSPORT"
	SectionTypeStreetNetwork     SectionType = "STREET_NETWORK"
	SectionTypeCrowFly           SectionType = "CROW_FLY"
	SectionTypeTransfer          SectionType = "TRANSFER"
	SectionTypeWaiting           SectionType = "WAITING"
	SectionTypePark              SectionType = "PARK"
	SectionTypeLeaveParking      SectionType = "LEAVE_PARKING"
	SectionTypeBssRent           SectionType = "BSS_RENT"
	SectionTypeBssPutBack        SectionType = "BSS_PUT_BACK"
	SectionTypeRidesharing       SectionType = "RIDESHARING"
	SectionTypeBoarding          SectionType = "BOARDING"
	SectionTypeLanding           SectionType = "LANDING"
	SectionTypeAlighting         SectionType = "ALIGHTING"
)

// StreetNetworkMode is the fallback mode of a STREET_NETWORK or CROW_FLY section.
// An empty mode means the engine did not send one: it is treated as unknown and
// never matches any mode specific rule.
type StreetNetworkMode string

const (
	StreetNetworkModeUnknown     StreetNetworkMode = ""
	StreetNetworkModeWalking     StreetNetworkMode = "Walking"
	StreetNetworkModeBike        StreetNetworkMode = "Bike"
	StreetNetworkModeCar         StreetNetworkMode = "Car"
	StreetNetworkModeCarNoPark   StreetNetworkMode = "CarNoPark"
	StreetNetworkModeBss         StreetNetworkMode = "Bss"
	StreetNetworkModeRidesharing StreetNetworkMode = "Ridesharing"
	StreetNetworkModeTaxi        StreetNetworkMode = "Taxi"
)

type AdditionalInformation string

const (
	AdditionalInformationRegular           AdditionalInformation = "regular"
	AdditionalInformationHasDatetimeEstim  AdditionalInformation = "has_date_time_estimated"
	AdditionalInformationODTWithZone       AdditionalInformation = "odt_with_zone"
	AdditionalInformationODTWithStopPoint  AdditionalInformation = "odt_with_stop_point"
	AdditionalInformationODTWithStopTime   AdditionalInformation = "odt_with_stop_time"
	AdditionalInformationStayIn            AdditionalInformation = "stay_in"
	AdditionalInformationRealtimeEstimated AdditionalInformation = "realtime_estimated"
)

const EquipmentBikeAccepted = "has_bike_accepted"

type Place struct {
	URI        string   `groups:"basic" json:"uri"`
	Name       string   `groups:"basic" json:"name,omitempty"`
	Equipments []string `groups:"detailed" json:"equipments,omitempty"`
}

func (p *Place) HasEquipment(equipment string) bool {
	if p == nil {
		return false
	}
	for _, e := range p.Equipments {
		if e == equipment {
			return true
		}
	}
	return false
}

type PTUris struct {
	Line           string `groups:"basic" json:"line,omitempty"`
	VehicleJourney string `groups:"basic" json:"vehicle_journey,omitempty"`
	Route          string `groups:"basic" json:"route,omitempty"`
	PhysicalMode   string `groups:"basic" json:"physical_mode,omitempty"`
	CommercialMode string `groups:"basic" json:"commercial_mode,omitempty"`
	Network        string `groups:"basic" json:"network,omitempty"`
}

type PTDisplayInformations struct {
	Uris PTUris `groups:"basic" json:"uris"`

	Headsign               string                  `groups:"basic" json:"headsign,omitempty"`
	PhysicalMode           string                  `groups:"basic" json:"physical_mode,omitempty"`
	Equipments             []string                `groups:"detailed" json:"equipments,omitempty"`
	AdditionalInformations []AdditionalInformation `groups:"basic" json:"additional_informations,omitempty"`
}

func (d *PTDisplayInformations) HasEquipment(equipment string) bool {
	if d == nil {
		return false
	}
	for _, e := range d.Equipments {
		if e == equipment {
			return true
		}
	}
	return false
}

type Section struct {
	ID   string      `groups:"basic" json:"id"`
	Type SectionType `groups:"basic" json:"type"`

	Duration      int64 `groups:"basic" json:"duration"`
	Length        int64 `groups:"basic" json:"length,omitempty"`
	BeginDateTime int64 `groups:"basic" json:"begin_date_time"`
	EndDateTime   int64 `groups:"basic" json:"end_date_time"`

	Origin      *Place `groups:"basic" json:"from,omitempty"`
	Destination *Place `groups:"basic" json:"to,omitempty"`

	// Only set on STREET_NETWORK and CROW_FLY sections
	Mode StreetNetworkMode `groups:"basic" json:"mode,omitempty"`

	// Only set on PUBLIC_TRANSPORT and ON_DEMAND_TRANSPORT sections
	PTDisplayInformations *PTDisplayInformations `groups:"basic" json:"display_informations,omitempty"`

	FeedPublisherID string `groups:"internal" json:"feed_publisher_id,omitempty"`
}

func (s *Section) IsPublicTransport() bool {
	return s.Type == SectionTypePublicTransport || s.Type == SectionTypeOnDemandTransport
}

func (s *Section) IsStreetNetworkOrCrowFly() bool {
	return s.Type == SectionTypeStreetNetwork || s.Type == SectionTypeCrowFly
}

func (s *Section) LineURI() string {
	if s.PTDisplayInformations == nil {
		return ""
	}
	return s.PTDisplayInformations.Uris.Line
}

func (s *Section) VehicleJourneyURI() string {
	if s.PTDisplayInformations == nil {
		return ""
	}
	return s.PTDisplayInformations.Uris.VehicleJourney
}

func (s *Section) PhysicalModeURI() string {
	if s.PTDisplayInformations == nil {
		return ""
	}
	return s.PTDisplayInformations.Uris.PhysicalMode
}

func (s *Section) OriginURI() string {
	if s.Origin == nil {
		return ""
	}
	return s.Origin.URI
}

func (s *Section) DestinationURI() string {
	if s.Destination == nil {
		return ""
	}
	return s.Destination.URI
}

func (s *Section) HasAdditionalInformation(infos ...AdditionalInformation) bool {
	if s.PTDisplayInformations == nil {
		return false
	}
	for _, have := range s.PTDisplayInformations.AdditionalInformations {
		for _, want := range infos {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsODT is true for sections flagged as on demand transport by their additional informations
func (s *Section) IsODT() bool {
	return s.HasAdditionalInformation(
		AdditionalInformationODTWithZone,
		AdditionalInformationODTWithStopPoint,
		AdditionalInformationODTWithStopTime,
	)
}
