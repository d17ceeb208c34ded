package journeyfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/federation/pkg/ctdf"
)

func TestWrapDebug(t *testing.T) {
	j := journey("1-0", walking(10))
	j.NbTransfers = 0

	wrapped := Wrap(&MinTransfers{MinNbTransfers: 1}, true)

	assert.True(t, wrapped(j))
	assert.True(t, j.IsDead())
	assert.Equal(t, []string{"to_delete", "deleted_because_not_enough_connections"}, j.RenderedTags())
}

func TestWrapNoDebug(t *testing.T) {
	j := journey("1-0", walking(10))

	wrapped := Wrap(&MinTransfers{MinNbTransfers: 1}, false)

	assert.False(t, wrapped(j))
	assert.True(t, j.IsDead())
	assert.Equal(t, []string{"to_delete"}, j.RenderedTags())
	assert.Empty(t, j.DeletionReasons)
}

func TestWrapKeptJourney(t *testing.T) {
	j := journey("1-0", walking(10))
	j.NbTransfers = 2

	assert.True(t, Wrap(&MinTransfers{MinNbTransfers: 1}, false)(j))
	assert.False(t, j.IsDead())
}

func TestApplyFiltersStopsAtFirstRejection(t *testing.T) {
	j := journey("1-0", walking(10))
	j.Tags.Add(ctdf.TagNonPT)

	filters := []SingleJourneyFilter{
		&MinTransfers{MinNbTransfers: 1},
		&DirectPath{DirectPath: ctdf.DirectPathNone},
	}

	ApplyFilters(ctdf.QualifiedJourneys([]*ctdf.Response{response(j)}), filters, true)
	assert.Equal(t, []string{"not_enough_connections", "direct_path"}, j.DeletionReasons)

	other := journey("1-1", walking(10))
	other.Tags.Add(ctdf.TagNonPT)
	ApplyFilters(ctdf.QualifiedJourneys([]*ctdf.Response{response(other)}), filters, false)
	assert.True(t, other.IsDead())
	assert.Empty(t, other.DeletionReasons)
}

func TestTooShortHeavyJourneys(t *testing.T) {
	filter := &TooShortHeavyJourneys{MinCar: ptr[int64](300), MinBike: ptr[int64](300)}

	shortCar := journey("1-0", streetNetwork(ctdf.StreetNetworkModeCar, 100), section(ctdf.SectionTypePark, 10),
		publicTransport("line:A", "vj:1", 600))
	assert.False(t, filter.Keep(shortCar))

	longCar := journey("1-1", streetNetwork(ctdf.StreetNetworkModeCar, 400), section(ctdf.SectionTypePark, 10),
		publicTransport("line:A", "vj:1", 600))
	assert.True(t, filter.Keep(longCar))

	bikeDirectPath := journey("1-2", streetNetwork(ctdf.StreetNetworkModeBike, 10))
	assert.True(t, filter.Keep(bikeDirectPath))

	bss := journey("1-3", walking(60), section(ctdf.SectionTypeBssRent, 30), streetNetwork(ctdf.StreetNetworkModeBike, 20),
		section(ctdf.SectionTypeBssPutBack, 30), publicTransport("line:A", "vj:1", 600))
	assert.True(t, filter.Keep(bss))

	shortTaxi := journey("1-4", streetNetwork(ctdf.StreetNetworkModeTaxi, 10), publicTransport("line:A", "vj:1", 600))
	assert.True(t, filter.Keep(shortTaxi), "no taxi threshold")
	assert.False(t, (&TooShortHeavyJourneys{MinTaxi: ptr[int64](60)}).Keep(shortTaxi))
}

func TestTooLongWaiting(t *testing.T) {
	filter := &TooLongWaiting{MaxWaitingDuration: 1000}

	noTransfer := journey("1-0", publicTransport("line:A", "vj:1", 600), section(ctdf.SectionTypeWaiting, 5000))
	assert.True(t, filter.Keep(noTransfer))

	long := journey("1-1", publicTransport("line:A", "vj:1", 600), section(ctdf.SectionTypeWaiting, 1000),
		publicTransport("line:B", "vj:2", 600))
	long.NbTransfers = 1
	assert.False(t, filter.Keep(long))

	short := journey("1-2", publicTransport("line:A", "vj:1", 600), section(ctdf.SectionTypeWaiting, 999),
		publicTransport("line:B", "vj:2", 600))
	short.NbTransfers = 1
	assert.True(t, filter.Keep(short))
}

func busSection(mode string) *ctdf.Section {
	s := publicTransport("line:"+mode, "vj:"+mode, 100)
	s.PTDisplayInformations.Uris.PhysicalMode = mode
	return s
}

func TestMaxSuccessivePhysicalMode(t *testing.T) {
	filter := &MaxSuccessivePhysicalMode{LimitModeID: "physical_mode:Bus", MaxSuccessive: 1}

	reset := journey("1-0", busSection("physical_mode:Bus"), busSection("physical_mode:Metro"), busSection("physical_mode:Bus"))
	assert.True(t, filter.Keep(reset))

	// the streak is not reset once exceeded
	exceeded := journey("1-1", busSection("physical_mode:Bus"), busSection("physical_mode:Bus"),
		busSection("physical_mode:Metro"), busSection("physical_mode:Metro"))
	assert.False(t, filter.Keep(exceeded))
}

func TestDirectPathFilters(t *testing.T) {
	direct := journey("1-0", walking(100))
	direct.Tags = ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagWalking, ctdf.TagNonPTWalking)
	pt := journey("1-1", walking(100), publicTransport("line:A", "vj:1", 600))
	pt.Tags = ctdf.NewTagSet(ctdf.TagWalking)

	tests := []struct {
		directPath string
		direct     bool
		pt         bool
	}{
		{ctdf.DirectPathIndifferent, true, true},
		{ctdf.DirectPathNone, false, true},
		{ctdf.DirectPathOnly, true, false},
		{ctdf.DirectPathOnlyWithAlternatives, true, false},
	}
	for _, test := range tests {
		filter := &DirectPath{DirectPath: test.directPath}
		assert.Equal(t, test.direct, filter.Keep(direct), test.directPath)
		assert.Equal(t, test.pt, filter.Keep(pt), test.directPath)
	}

	assert.True(t, (&DirectPathMode{AllowedModes: []string{"walking", "bike"}}).Keep(direct))
	assert.False(t, (&DirectPathMode{AllowedModes: []string{"bike"}}).Keep(direct))
	assert.True(t, (&DirectPathMode{AllowedModes: []string{"bike"}}).Keep(pt))
}

func TestTooLongDirectPath(t *testing.T) {
	request := &ctdf.JourneyRequest{MaxWalkingDirectPathDuration: ptr[int64](600)}
	filter := &TooLongDirectPath{Request: request}

	long := journey("1-0", walking(600))
	long.Tags = ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagWalking)
	assert.False(t, filter.Keep(long))

	short := journey("1-1", walking(599))
	short.Tags = ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagWalking)
	assert.True(t, filter.Keep(short))

	ambiguous := journey("1-2", walking(6000))
	ambiguous.Tags = ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagWalking, ctdf.TagBike)
	assert.True(t, filter.Keep(ambiguous))

	noLimit := journey("1-3", streetNetwork(ctdf.StreetNetworkModeBike, 6000))
	noLimit.Tags = ctdf.NewTagSet(ctdf.TagNonPT, ctdf.TagBike)
	assert.True(t, filter.Keep(noLimit))
}

func TestBuildFilters(t *testing.T) {
	request := &ctdf.JourneyRequest{}
	assert.Len(t, BuildFilters(request, "physical_mode:Bus"), 4)

	request = &ctdf.JourneyRequest{
		MaxSuccessivePhysicalMode: ptr(2),
		DirectPath:                ctdf.DirectPathNone,
		DirectPathMode:            []string{"walking"},
	}
	assert.Len(t, BuildFilters(request, "physical_mode:Bus"), 7)

	request.MaxSuccessivePhysicalMode = ptr(0)
	assert.Len(t, BuildFilters(request, "physical_mode:Bus"), 6)
}

func TestExpressionFilter(t *testing.T) {
	filter, err := NewExpressionFilter("too_many_sections", "nb_sections <= 2")
	assert.Nil(t, err)

	assert.True(t, filter.Keep(journey("1-0", walking(10), publicTransport("line:A", "vj:1", 10))))
	assert.False(t, filter.Keep(journey("1-1", walking(10), publicTransport("line:A", "vj:1", 10), walking(10))))
	assert.Equal(t, "too_many_sections", filter.Message())

	tagged, err := NewExpressionFilter("no_reliable", `"reliable" in tags`)
	assert.Nil(t, err)
	reliable := journey("1-2", walking(10))
	reliable.Tags.Add(ctdf.TagReliable)
	assert.True(t, tagged.Keep(reliable))

	_, err = NewExpressionFilter("broken", "duration +")
	assert.NotNil(t, err)
}
