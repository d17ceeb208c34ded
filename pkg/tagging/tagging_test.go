package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/federation/pkg/ctdf"
)

func sn(mode ctdf.StreetNetworkMode, duration int64) *ctdf.Section {
	return &ctdf.Section{Type: ctdf.SectionTypeStreetNetwork, Mode: mode, Duration: duration}
}

func typed(sectionType ctdf.SectionType) *ctdf.Section {
	return &ctdf.Section{Type: sectionType}
}

func pt(physicalMode string, equipments ...string) *ctdf.Section {
	return &ctdf.Section{
		Type:        ctdf.SectionTypePublicTransport,
		Origin:      &ctdf.Place{URI: "stop_point:a", Equipments: equipments},
		Destination: &ctdf.Place{URI: "stop_point:b", Equipments: equipments},
		PTDisplayInformations: &ctdf.PTDisplayInformations{
			Uris:       ctdf.PTUris{PhysicalMode: physicalMode},
			Equipments: equipments,
		},
	}
}

func TestTagJourneyByMode(t *testing.T) {
	tests := []struct {
		name     string
		sections []*ctdf.Section
		expected string
	}{
		{"walking", []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 10), pt("physical_mode:Bus")}, ctdf.TagWalking},
		{"bike", []*ctdf.Section{sn(ctdf.StreetNetworkModeBike, 10), pt("physical_mode:Bus")}, ctdf.TagBike},
		{"bss", []*ctdf.Section{typed(ctdf.SectionTypeBssRent), sn(ctdf.StreetNetworkModeBike, 10), typed(ctdf.SectionTypeBssPutBack)}, ctdf.TagBss},
		{"bss crow fly", []*ctdf.Section{{Type: ctdf.SectionTypeCrowFly, Mode: ctdf.StreetNetworkModeBss}}, ctdf.TagBss},
		{"car wins", []*ctdf.Section{sn(ctdf.StreetNetworkModeCar, 10), pt("physical_mode:Bus"), sn(ctdf.StreetNetworkModeBike, 10)}, ctdf.TagCar},
		{"car no park", []*ctdf.Section{sn(ctdf.StreetNetworkModeCarNoPark, 10)}, ctdf.TagCarNoPark},
		{"taxi", []*ctdf.Section{sn(ctdf.StreetNetworkModeTaxi, 10), pt("physical_mode:Bus")}, ctdf.TagTaxi},
		{"ridesharing section", []*ctdf.Section{typed(ctdf.SectionTypeRidesharing)}, ctdf.TagRidesharing},
		{"unknown mode", []*ctdf.Section{sn(ctdf.StreetNetworkModeUnknown, 10)}, ctdf.TagWalking},
	}

	for _, test := range tests {
		journey := &ctdf.Journey{Sections: test.sections}
		TagJourneyByMode(journey)
		assert.Equal(t, ctdf.TagSet{test.expected}, journey.Tags, test.name)
	}
}

func TestTagDirectPath(t *testing.T) {
	walk := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 10)}}
	TagDirectPath(walk)
	assert.Equal(t, ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagNonPTWalking), walk.Tags)

	taxi := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeTaxi, 10)}}
	TagDirectPath(taxi)
	assert.Equal(t, ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagNonPTTaxi), taxi.Tags)

	carPark := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeCar, 10), typed(ctdf.SectionTypePark), sn(ctdf.StreetNetworkModeWalking, 10)}}
	TagDirectPath(carPark)
	assert.Equal(t, ctdf.NewTagSet(ctdf.TagNonPT), carPark.Tags)

	withPT := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 10), pt("physical_mode:Bus")}}
	TagDirectPath(withPT)
	assert.Empty(t, withPT.Tags)
}

func TestTagBikeInPT(t *testing.T) {
	accepted := &ctdf.Journey{Sections: []*ctdf.Section{
		sn(ctdf.StreetNetworkModeBike, 10),
		pt("physical_mode:Train", ctdf.EquipmentBikeAccepted),
		typed(ctdf.SectionTypeWaiting),
		pt("physical_mode:Train", ctdf.EquipmentBikeAccepted),
		sn(ctdf.StreetNetworkModeBike, 10),
	}}
	assert.True(t, IsBikeInPTJourney(accepted))

	notAccepted := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeBike, 10), pt("physical_mode:Train")}}
	assert.False(t, IsBikeInPTJourney(notAccepted))

	walking := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 10), pt("physical_mode:Train", ctdf.EquipmentBikeAccepted)}}
	assert.False(t, IsBikeInPTJourney(walking))

	bikeOnly := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeBike, 10)}}
	assert.False(t, IsBikeInPTJourney(bikeOnly))
}

func TestTagReliable(t *testing.T) {
	train := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 10), pt("physical_mode:Train"), pt("physical_mode:Metro")}}
	assert.True(t, IsReliableJourney(train))

	withBus := &ctdf.Journey{Sections: []*ctdf.Section{pt("physical_mode:Train"), pt("physical_mode:Bus")}}
	assert.False(t, IsReliableJourney(withBus))

	withCar := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeCar, 10), pt("physical_mode:Train")}}
	assert.False(t, IsReliableJourney(withCar))

	disrupted := &ctdf.Journey{Sections: []*ctdf.Section{pt("physical_mode:Train")}, MostSeriousDisruptionEffect: "SIGNIFICANT_DELAYS"}
	assert.False(t, IsReliableJourney(disrupted))

	noPT := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 10)}}
	assert.False(t, IsReliableJourney(noPT))
}

func TestTaggingIsIdempotent(t *testing.T) {
	journey := &ctdf.Journey{Sections: []*ctdf.Section{
		sn(ctdf.StreetNetworkModeBike, 10),
		pt("physical_mode:Train", ctdf.EquipmentBikeAccepted),
		sn(ctdf.StreetNetworkModeBike, 10),
	}}
	responses := []*ctdf.Response{{Journeys: []*ctdf.Journey{journey}}}

	TagJourneys(responses)
	once := append(ctdf.TagSet{}, journey.Tags...)
	TagJourneys(responses)

	assert.Equal(t, once, journey.Tags)
	assert.Equal(t, ctdf.NewTagSet(ctdf.TagBike, ctdf.TagBikeInPT, ctdf.TagReliable), journey.Tags)

	direct := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 10)}}
	TagDirectPath(direct)
	TagDirectPath(direct)
	assert.Equal(t, ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagNonPTWalking), direct.Tags)
}

func TestTagJourneysUpdatesDurations(t *testing.T) {
	car := sn(ctdf.StreetNetworkModeCar, 900)
	car.Length = 12000
	journey := &ctdf.Journey{Sections: []*ctdf.Section{
		car,
		typed(ctdf.SectionTypePark),
		sn(ctdf.StreetNetworkModeWalking, 60),
		pt("physical_mode:Bus"),
	}}
	journey.Sections[3].Duration = 1200

	TagJourneys([]*ctdf.Response{{Journeys: []*ctdf.Journey{journey}}})

	assert.Equal(t, int64(2160), journey.Durations.Total)
	assert.Equal(t, int64(900), journey.Durations.Car)
	assert.Equal(t, int64(60), journey.Durations.Walking)
	assert.Equal(t, int64(12000), journey.Distances.Car)
	assert.True(t, journey.Tags.Has(ctdf.TagCar))
}

func TestEcologic(t *testing.T) {
	car := &ctdf.Journey{
		Sections:    []*ctdf.Section{sn(ctdf.StreetNetworkModeCar, 600), typed(ctdf.SectionTypePark), sn(ctdf.StreetNetworkModeWalking, 60)},
		Co2Emission: &ctdf.Co2Emission{Value: 1000, Unit: "gEC"},
	}
	train := &ctdf.Journey{
		Sections:    []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 60), pt("physical_mode:Train")},
		Co2Emission: &ctdf.Co2Emission{Value: 100, Unit: "gEC"},
	}
	bus := &ctdf.Journey{
		Sections:    []*ctdf.Section{pt("physical_mode:Bus")},
		Co2Emission: &ctdf.Co2Emission{Value: 600, Unit: "gEC"},
	}
	otherUnit := &ctdf.Journey{
		Sections:    []*ctdf.Section{pt("physical_mode:Bus")},
		Co2Emission: &ctdf.Co2Emission{Value: 1, Unit: "kgEC"},
	}
	walk := &ctdf.Journey{Sections: []*ctdf.Section{sn(ctdf.StreetNetworkModeWalking, 600)}}

	response := &ctdf.Response{Journeys: []*ctdf.Journey{train, car, bus, otherUnit, walk}}

	assert.True(t, IsCarDirectPath(car))
	assert.False(t, IsCarDirectPath(walk))

	ComputeCarCo2Emission(response)
	assert.Equal(t, &ctdf.Co2Emission{Value: 1000, Unit: "gEC"}, response.CarCo2Emission)

	TagEcologic(response)
	assert.True(t, train.Tags.Has(ctdf.TagEcologic))
	assert.False(t, car.Tags.Has(ctdf.TagEcologic))
	assert.False(t, bus.Tags.Has(ctdf.TagEcologic))
	assert.False(t, otherUnit.Tags.Has(ctdf.TagEcologic))
	assert.True(t, walk.Tags.Has(ctdf.TagEcologic))
}

func TestModeWeight(t *testing.T) {
	assert.Equal(t, 1, ModeWeight(&ctdf.Journey{}))
	assert.Equal(t, 5, ModeWeight(&ctdf.Journey{Tags: ctdf.NewTagSet(ctdf.TagWalking, ctdf.TagCar)}))
	assert.Equal(t, 3, ModeWeight(&ctdf.Journey{Tags: ctdf.NewTagSet(ctdf.TagBike, ctdf.TagNonPT)}))
}
