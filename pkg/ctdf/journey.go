package ctdf

type JourneyStatus string

const (
	JourneyStatusAlive JourneyStatus = ""
	JourneyStatusDead  JourneyStatus = "dead"
)

type Durations struct {
	Total       int64 `groups:"basic" json:"total"`
	Walking     int64 `groups:"basic" json:"walking"`
	Bike        int64 `groups:"basic" json:"bike"`
	Bss         int64 `groups:"basic" json:"bss"`
	Car         int64 `groups:"basic" json:"car"`
	Taxi        int64 `groups:"basic" json:"taxi"`
	Ridesharing int64 `groups:"basic" json:"ridesharing"`
}

type Distances struct {
	Walking     int64 `groups:"basic" json:"walking"`
	Bike        int64 `groups:"basic" json:"bike"`
	Bss         int64 `groups:"basic" json:"bss"`
	Car         int64 `groups:"basic" json:"car"`
	Taxi        int64 `groups:"basic" json:"taxi"`
	Ridesharing int64 `groups:"basic" json:"ridesharing"`
}

type Fare struct {
	Found     bool     `groups:"basic" json:"found"`
	TicketIDs []string `groups:"basic" json:"ticket_ids,omitempty"`
}

type Co2Emission struct {
	Value float64 `groups:"basic" json:"value"`
	Unit  string  `groups:"basic" json:"unit"`
}

type Journey struct {
	InternalID string `groups:"debug" json:"internal_id"`

	Type string `groups:"basic" json:"type"`

	Duration          int64 `groups:"basic" json:"duration"`
	NbTransfers       int   `groups:"basic" json:"nb_transfers"`
	DepartureDateTime int64 `groups:"basic" json:"departure_date_time"`
	ArrivalDateTime   int64 `groups:"basic" json:"arrival_date_time"`
	RequestedDateTime int64 `groups:"basic" json:"requested_date_time"`

	Sections []*Section `groups:"basic" json:"sections"`

	Tags TagSet `groups:"basic" json:"tags"`

	Status          JourneyStatus `groups:"debug" json:"status,omitempty"`
	DeletionReasons []string      `groups:"debug" json:"deletion_reasons,omitempty"`

	Durations Durations `groups:"basic" json:"durations"`
	Distances Distances `groups:"basic" json:"distances"`

	Fare        *Fare        `groups:"basic" json:"fare,omitempty"`
	Co2Emission *Co2Emission `groups:"basic" json:"co2_emission,omitempty"`

	MostSeriousDisruptionEffect string `groups:"basic" json:"most_serious_disruption_effect,omitempty"`
}

func (j *Journey) IsDead() bool {
	return j.Status == JourneyStatusDead
}

// RenderedTags gives the tag list as exposed to clients: the classification tags
// followed by the deletion markers of a dead journey.
func (j *Journey) RenderedTags() []string {
	tags := append([]string{}, j.Tags...)
	if !j.IsDead() {
		return tags
	}

	tags = append(tags, TagToDelete)
	for _, reason := range j.DeletionReasons {
		tags = append(tags, TagDeletedBecausePrefix+reason)
	}
	return tags
}

func (j *Journey) FirstSection() *Section {
	if len(j.Sections) == 0 {
		return nil
	}
	return j.Sections[0]
}

func (j *Journey) LastSection() *Section {
	if len(j.Sections) == 0 {
		return nil
	}
	return j.Sections[len(j.Sections)-1]
}

func (j *Journey) HasPublicTransport() bool {
	for _, section := range j.Sections {
		if section.IsPublicTransport() {
			return true
		}
	}
	return false
}

func (j *Journey) TicketIDs() []string {
	if j.Fare == nil {
		return nil
	}
	return j.Fare.TicketIDs
}

// UpdateDurations recomputes the per mode totals from the sections so that
// Durations.Total is the sum of the section durations.
func (j *Journey) UpdateDurations() {
	j.Durations = Durations{}
	j.Distances = Distances{}

	onBss := false
	for _, section := range j.Sections {
		j.Durations.Total += section.Duration

		switch section.Type {
		case SectionTypeBssRent:
			onBss = true
			continue
		case SectionTypeBssPutBack:
			onBss = false
			continue
		case SectionTypeStreetNetwork, SectionTypeCrowFly:
		default:
			continue
		}

		mode := section.Mode
		if onBss && mode == StreetNetworkModeBike {
			mode = StreetNetworkModeBss
		}

		switch mode {
		case StreetNetworkModeWalking:
			j.Durations.Walking += section.Duration
			j.Distances.Walking += section.Length
		case StreetNetworkModeBike:
			j.Durations.Bike += section.Duration
			j.Distances.Bike += section.Length
		case StreetNetworkModeBss:
			j.Durations.Bss += section.Duration
			j.Distances.Bss += section.Length
		case StreetNetworkModeCar, StreetNetworkModeCarNoPark:
			j.Durations.Car += section.Duration
			j.Distances.Car += section.Length
		case StreetNetworkModeTaxi:
			j.Durations.Taxi += section.Duration
			j.Distances.Taxi += section.Length
		case StreetNetworkModeRidesharing:
			j.Durations.Ridesharing += section.Duration
			j.Distances.Ridesharing += section.Length
		}
	}
}

// PseudoDuration is the time between the requested datetime and the end of the journey,
// its arrival when clockwise and its departure otherwise.
func (j *Journey) PseudoDuration(requestedDateTime int64, clockwise bool) int64 {
	if clockwise {
		return j.ArrivalDateTime - requestedDateTime
	}
	return requestedDateTime - j.DepartureDateTime
}

// HasFallbackMode is true when a street network or crow fly section uses the mode
func (j *Journey) HasFallbackMode(mode StreetNetworkMode) bool {
	for _, section := range j.Sections {
		if section.IsStreetNetworkOrCrowFly() && section.Mode == mode {
			return true
		}
	}
	return false
}

func (j *Journey) HasSectionType(sectionType SectionType) bool {
	for _, section := range j.Sections {
		if section.Type == sectionType {
			return true
		}
	}
	return false
}
